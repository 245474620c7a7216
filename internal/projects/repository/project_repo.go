package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projtrack-app/projtrack-backend/internal/projects/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const projectsCollection = "projects"

// ProjectRepository is the project document store.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(projectsCollection)}
}

// Insert stores a new project document and returns its id.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) (string, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.MemberIDs == nil {
		p.MemberIDs = []string{}
	}

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("insert project: %w", err)
	}
	return p.ID, nil
}

// FindByID retrieves a project by document id
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

// FindByManager returns the projects managed by the user.
func (r *ProjectRepository) FindByManager(ctx context.Context, userID string, archived bool) ([]domain.Project, error) {
	return r.list(ctx, bson.M{"manager_id": userID, "archived": archived})
}

// FindByMemberOf returns the projects the user participates in as a team member.
func (r *ProjectRepository) FindByMemberOf(ctx context.Context, userID string, archived bool) ([]domain.Project, error) {
	return r.list(ctx, bson.M{"member_ids": userID, "archived": archived})
}

// FindInvolved returns the projects the user manages or participates in.
func (r *ProjectRepository) FindInvolved(ctx context.Context, userID string, archived bool) ([]domain.Project, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"manager_id": userID},
			bson.M{"member_ids": userID},
		},
		"archived": archived,
	}
	return r.list(ctx, filter)
}

// UpdateDetails overwrites the editable fields of a project.
func (r *ProjectRepository) UpdateDetails(ctx context.Context, id string, upd domain.ProjectUpdate) error {
	set := bson.M{
		"name":           upd.Name,
		"description":    upd.Description,
		"price":          upd.Price,
		"progress_notes": upd.ProgressNotes,
		"start_date":     upd.StartDate,
		"end_date":       upd.EndDate,
		"updated_at":     time.Now().UTC(),
	}
	return r.updateByID(ctx, id, bson.M{"$set": set})
}

// SetProgress updates only the progress notes.
func (r *ProjectRepository) SetProgress(ctx context.Context, id, notes string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"progress_notes": notes,
		"updated_at":     time.Now().UTC(),
	}})
}

// SetArchived flips the archived flag to the given value.
func (r *ProjectRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"archived":   archived,
		"updated_at": time.Now().UTC(),
	}})
}

// AddMember appends a user to the member set. $addToSet keeps the
// operation idempotent at the store.
func (r *ProjectRepository) AddMember(ctx context.Context, id, userID string) error {
	return r.updateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"member_ids": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

// Delete permanently removes a project document.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) list(ctx context.Context, filter bson.M) ([]domain.Project, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Project, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return out, nil
}
