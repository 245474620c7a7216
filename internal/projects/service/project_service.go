package service

import (
	"context"
	"time"

	authdomain "github.com/projtrack-app/projtrack-backend/internal/auth/domain"
	"github.com/projtrack-app/projtrack-backend/internal/projects/domain"
)

// ProjectStore is the document store the service persists projects in.
type ProjectStore interface {
	Insert(ctx context.Context, p *domain.Project) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByManager(ctx context.Context, userID string, archived bool) ([]domain.Project, error)
	FindByMemberOf(ctx context.Context, userID string, archived bool) ([]domain.Project, error)
	FindInvolved(ctx context.Context, userID string, archived bool) ([]domain.Project, error)
	UpdateDetails(ctx context.Context, id string, upd domain.ProjectUpdate) error
	SetProgress(ctx context.Context, id, notes string) error
	SetArchived(ctx context.Context, id string, archived bool) error
	AddMember(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id string) error
}

// UserDirectory resolves user ids to user records for the detail view and
// for validating member additions.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*authdomain.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]authdomain.User, error)
	ListOthers(ctx context.Context, excludeID string) ([]authdomain.User, error)
}

// ProjectService implements the project lifecycle. Every operation takes the
// caller identity explicitly and re-derives the role from current project
// state before touching the store.
type ProjectService struct {
	store ProjectStore
	users UserDirectory
}

func NewProjectService(store ProjectStore, users UserDirectory) *ProjectService {
	return &ProjectService{store: store, users: users}
}

// CreateRequest carries the new-project form fields
type CreateRequest struct {
	Name          string
	Description   string
	Price         float64
	ProgressNotes string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ProjectDetail is a project with manager and members resolved to user
// records, plus the users the manager could still add to the team.
type ProjectDetail struct {
	Project    *domain.Project   `json:"project"`
	Role       domain.Role       `json:"role"`
	Manager    *authdomain.User  `json:"manager,omitempty"`
	Members    []authdomain.User `json:"members"`
	Candidates []authdomain.User `json:"candidates"`
}

// Create stores a new active project with the caller as manager.
func (s *ProjectService) Create(ctx context.Context, identity *authdomain.Identity, req *CreateRequest) (*domain.Project, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	p := &domain.Project{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ProgressNotes: req.ProgressNotes,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Archived:      false,
		ManagerID:     identity.UserID,
		MemberIDs:     []string{},
	}

	if _, err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListManaged returns the caller's active projects as manager.
func (s *ProjectService) ListManaged(ctx context.Context, identity *authdomain.Identity) ([]domain.Project, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.FindByManager(ctx, identity.UserID, false)
}

// ListMember returns the caller's active projects as team member.
func (s *ProjectService) ListMember(ctx context.Context, identity *authdomain.Identity) ([]domain.Project, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.FindByMemberOf(ctx, identity.UserID, false)
}

// ListArchive returns every archived project the caller is involved in.
func (s *ProjectService) ListArchive(ctx context.Context, identity *authdomain.Identity) ([]domain.Project, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.FindInvolved(ctx, identity.UserID, true)
}

// ListAll returns every active project the caller is involved in.
func (s *ProjectService) ListAll(ctx context.Context, identity *authdomain.Identity) ([]domain.Project, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.FindInvolved(ctx, identity.UserID, false)
}

// View returns the project detail for managers and members.
func (s *ProjectService) View(ctx context.Context, identity *authdomain.Identity, id string) (*ProjectDetail, error) {
	p, role, err := s.loadWithRole(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if !role.Involved() {
		return nil, domain.ErrForbidden
	}

	detail := &ProjectDetail{Project: p, Role: role}

	manager, err := s.users.GetByID(ctx, p.ManagerID)
	if err != nil && err != authdomain.ErrUserNotFound {
		return nil, err
	}
	detail.Manager = manager

	if detail.Members, err = s.users.GetByIDs(ctx, p.MemberIDs); err != nil {
		return nil, err
	}
	if detail.Candidates, err = s.users.ListOthers(ctx, identity.UserID); err != nil {
		return nil, err
	}

	return detail, nil
}

// EditInfo is the read-only guard check behind the edit form: only the
// manager may see it.
func (s *ProjectService) EditInfo(ctx context.Context, identity *authdomain.Identity, id string) (*domain.Project, error) {
	p, role, err := s.loadWithRole(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleManager {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// AddMember appends a user to the project team. Only the manager may add
// members; the id must reference an existing user. Adding someone already on
// the team (or the manager) is a silent no-op.
func (s *ProjectService) AddMember(ctx context.Context, identity *authdomain.Identity, id, userID string) error {
	p, role, err := s.loadWithRole(ctx, identity, id)
	if err != nil {
		return err
	}
	if role != domain.RoleManager {
		return domain.ErrForbidden
	}

	// The manager's access never depends on membership.
	if domain.RoleFor(userID, p) != domain.RoleNone {
		return nil
	}

	if _, err := s.users.GetByID(ctx, userID); err == authdomain.ErrUserNotFound {
		return domain.ErrUnknownMember
	} else if err != nil {
		return err
	}

	return s.store.AddMember(ctx, id, userID)
}

// UpdateProgress sets the progress notes. Managers and members may write them.
func (s *ProjectService) UpdateProgress(ctx context.Context, identity *authdomain.Identity, id, notes string) error {
	_, role, err := s.loadWithRole(ctx, identity, id)
	if err != nil {
		return err
	}
	if !role.Involved() {
		return domain.ErrForbidden
	}
	return s.store.SetProgress(ctx, id, notes)
}

// ToggleArchive flips the archived flag and returns the new value.
func (s *ProjectService) ToggleArchive(ctx context.Context, identity *authdomain.Identity, id string) (bool, error) {
	p, role, err := s.loadWithRole(ctx, identity, id)
	if err != nil {
		return false, err
	}
	if role != domain.RoleManager {
		return false, domain.ErrForbidden
	}

	archived := !p.Archived
	if err := s.store.SetArchived(ctx, id, archived); err != nil {
		return false, err
	}
	return archived, nil
}

// Delete permanently removes the project. Manager only; no soft delete.
func (s *ProjectService) Delete(ctx context.Context, identity *authdomain.Identity, id string) error {
	_, role, err := s.loadWithRole(ctx, identity, id)
	if err != nil {
		return err
	}
	if role != domain.RoleManager {
		return domain.ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

// FullUpdate overwrites the editable fields. Manager only.
func (s *ProjectService) FullUpdate(ctx context.Context, identity *authdomain.Identity, id string, upd domain.ProjectUpdate) (*domain.Project, error) {
	_, role, err := s.loadWithRole(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleManager {
		return nil, domain.ErrForbidden
	}

	if err := s.store.UpdateDetails(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

func (s *ProjectService) loadWithRole(ctx context.Context, identity *authdomain.Identity, id string) (*domain.Project, domain.Role, error) {
	if identity == nil {
		return nil, domain.RoleNone, domain.ErrUnauthenticated
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, domain.RoleNone, err
	}

	return p, domain.RoleFor(identity.UserID, p), nil
}
