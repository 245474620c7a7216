package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apimiddleware "github.com/projtrack-app/projtrack-backend/internal/api/http/middleware"
	authdomain "github.com/projtrack-app/projtrack-backend/internal/auth/domain"
	authhttp "github.com/projtrack-app/projtrack-backend/internal/auth/http"
	authmiddleware "github.com/projtrack-app/projtrack-backend/internal/auth/middleware"
	authservice "github.com/projtrack-app/projtrack-backend/internal/auth/service"
	"github.com/projtrack-app/projtrack-backend/internal/auth/session"
	projdomain "github.com/projtrack-app/projtrack-backend/internal/projects/domain"
	projhttp "github.com/projtrack-app/projtrack-backend/internal/projects/http"
	projservice "github.com/projtrack-app/projtrack-backend/internal/projects/service"
)

const cookieName = "projtrack_session"

// fakeUserStore serves as both the credential store and the user directory.
type fakeUserStore struct {
	byID   map[string]*authdomain.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[string]*authdomain.User)}
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*authdomain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *authdomain.User) (string, error) {
	for _, u := range f.byID {
		if u.Username == user.Username {
			return "", authdomain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return "", authdomain.ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("u%d", f.nextID)
	cp := *user
	f.byID[user.ID] = &cp
	return user.ID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*authdomain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByIDs(_ context.Context, ids []string) ([]authdomain.User, error) {
	out := []authdomain.User{}
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) ListOthers(_ context.Context, excludeID string) ([]authdomain.User, error) {
	out := []authdomain.User{}
	for id, u := range f.byID {
		if id != excludeID {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakeProjectStore mirrors the document store semantics in memory.
type fakeProjectStore struct {
	projects map[string]*projdomain.Project
	nextID   int
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[string]*projdomain.Project)}
}

func (f *fakeProjectStore) Insert(_ context.Context, p *projdomain.Project) (string, error) {
	f.nextID++
	p.ID = fmt.Sprintf("p%d", f.nextID)
	if p.MemberIDs == nil {
		p.MemberIDs = []string{}
	}
	cp := *p
	f.projects[p.ID] = &cp
	return p.ID, nil
}

func (f *fakeProjectStore) FindByID(_ context.Context, id string) (*projdomain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, projdomain.ErrProjectNotFound
	}
	cp := *p
	cp.MemberIDs = append([]string{}, p.MemberIDs...)
	return &cp, nil
}

func (f *fakeProjectStore) FindByManager(_ context.Context, userID string, archived bool) ([]projdomain.Project, error) {
	return f.filter(func(p *projdomain.Project) bool {
		return p.ManagerID == userID && p.Archived == archived
	}), nil
}

func (f *fakeProjectStore) FindByMemberOf(_ context.Context, userID string, archived bool) ([]projdomain.Project, error) {
	return f.filter(func(p *projdomain.Project) bool {
		return member(p, userID) && p.Archived == archived
	}), nil
}

func (f *fakeProjectStore) FindInvolved(_ context.Context, userID string, archived bool) ([]projdomain.Project, error) {
	return f.filter(func(p *projdomain.Project) bool {
		return (p.ManagerID == userID || member(p, userID)) && p.Archived == archived
	}), nil
}

func (f *fakeProjectStore) UpdateDetails(_ context.Context, id string, upd projdomain.ProjectUpdate) error {
	p, ok := f.projects[id]
	if !ok {
		return projdomain.ErrProjectNotFound
	}
	p.Name = upd.Name
	p.Description = upd.Description
	p.Price = upd.Price
	p.ProgressNotes = upd.ProgressNotes
	p.StartDate = upd.StartDate
	p.EndDate = upd.EndDate
	return nil
}

func (f *fakeProjectStore) SetProgress(_ context.Context, id, notes string) error {
	p, ok := f.projects[id]
	if !ok {
		return projdomain.ErrProjectNotFound
	}
	p.ProgressNotes = notes
	return nil
}

func (f *fakeProjectStore) SetArchived(_ context.Context, id string, archived bool) error {
	p, ok := f.projects[id]
	if !ok {
		return projdomain.ErrProjectNotFound
	}
	p.Archived = archived
	return nil
}

func (f *fakeProjectStore) AddMember(_ context.Context, id, userID string) error {
	p, ok := f.projects[id]
	if !ok {
		return projdomain.ErrProjectNotFound
	}
	if !member(p, userID) {
		p.MemberIDs = append(p.MemberIDs, userID)
	}
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return projdomain.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) filter(keep func(*projdomain.Project) bool) []projdomain.Project {
	out := []projdomain.Project{}
	for _, p := range f.projects {
		if keep(p) {
			cp := *p
			cp.MemberIDs = append([]string{}, p.MemberIDs...)
			out = append(out, cp)
		}
	}
	return out
}

func member(p *projdomain.Project, userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type app struct {
	handler http.Handler
	users   *fakeUserStore
}

func setupApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := session.NewManager(client, time.Hour)
	users := newFakeUserStore()
	store := newFakeProjectStore()

	r := gin.New()
	authhttp.NewHandler(authservice.NewAuthService(users), sessions, cookieName).Register(r)

	projectsGroup := r.Group("/projects")
	projectsGroup.Use(authmiddleware.SessionAuth(sessions, cookieName))
	projhttp.NewHandler(projservice.NewProjectService(store, users)).Register(projectsGroup)

	return &app{handler: apimiddleware.MethodOverride(r), users: users}
}

func (a *app) do(method, path, cookie string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *app) registerAndLogin(t *testing.T, username, pw string) string {
	t.Helper()

	rr := a.do(http.MethodPost, "/register", "", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {pw},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))

	rr = a.do(http.MethodPost, "/login", "", url.Values{
		"username": {username},
		"password": {pw},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/projects", rr.Header().Get("Location"))

	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("no session cookie issued")
	return ""
}

func (a *app) userID(t *testing.T, username string) string {
	t.Helper()
	u, err := a.users.GetByUsername(context.Background(), username)
	require.NoError(t, err)
	return u.ID
}

func listIDs(t *testing.T, rr *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Projects []projdomain.Project `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	ids := make([]string, 0, len(body.Projects))
	for _, p := range body.Projects {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestLoginFlow(t *testing.T) {
	a := setupApp(t)

	t.Run("unauthenticated request redirects to login", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/projects", "", nil)
		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("wrong password creates no session", func(t *testing.T) {
		rr := a.do(http.MethodPost, "/register", "", url.Values{
			"username": {"alice"},
			"email":    {"alice@example.com"},
			"password": {"pw1secret"},
		})
		require.Equal(t, http.StatusSeeOther, rr.Code)

		rr = a.do(http.MethodPost, "/login", "", url.Values{
			"username": {"alice"},
			"password": {"wrong"},
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("duplicate registration is a validation failure", func(t *testing.T) {
		rr := a.do(http.MethodPost, "/register", "", url.Values{
			"username": {"alice"},
			"email":    {"elsewhere@example.com"},
			"password": {"pw1secret"},
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "alice")
	})

	t.Run("logout invalidates the session", func(t *testing.T) {
		rr := a.do(http.MethodPost, "/login", "", url.Values{
			"username": {"alice"},
			"password": {"pw1secret"},
		})
		require.Equal(t, http.StatusSeeOther, rr.Code)
		cookie := rr.Result().Cookies()[0].Value

		rr = a.do(http.MethodGet, "/logout", cookie, nil)
		assert.Equal(t, http.StatusFound, rr.Code)

		rr = a.do(http.MethodGet, "/projects", cookie, nil)
		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})
}

func TestProjectLifecycleFlow(t *testing.T) {
	a := setupApp(t)

	alice := a.registerAndLogin(t, "alice", "pw1secret")
	bob := a.registerAndLogin(t, "bob", "pw2secret")

	// alice creates a project and becomes its manager
	rr := a.do(http.MethodPost, "/projects", alice, url.Values{
		"name":        {"Site Redesign"},
		"description": {"overhaul the landing pages"},
		"price":       {"2500"},
		"start_date":  {"2026-09-01"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/projects/manager", rr.Header().Get("Location"))

	rr = a.do(http.MethodGet, "/projects/manager", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	ids := listIDs(t, rr)
	require.Len(t, ids, 1)
	projectID := ids[0]

	t.Run("outsider cannot view", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/projects/"+projectID, bob, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("manager adds bob to the team", func(t *testing.T) {
		rr := a.do(http.MethodPost, "/projects/"+projectID+"/team", alice, url.Values{
			"user_id": {a.userID(t, "bob")},
		})
		require.Equal(t, http.StatusSeeOther, rr.Code)

		rr = a.do(http.MethodGet, "/projects/member", bob, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{projectID}, listIDs(t, rr))
	})

	t.Run("member updates progress through a form override", func(t *testing.T) {
		rr := a.do(http.MethodPost, "/projects/"+projectID+"/poslovi", bob, url.Values{
			"_method":        {"PUT"},
			"progress_notes": {"halfway there"},
		})
		require.Equal(t, http.StatusSeeOther, rr.Code)

		rr = a.do(http.MethodGet, "/projects/"+projectID, bob, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "halfway there")
	})

	t.Run("member cannot archive", func(t *testing.T) {
		rr := a.do(http.MethodPut, "/projects/"+projectID+"/archive", bob, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("manager archives and unarchives", func(t *testing.T) {
		rr := a.do(http.MethodPut, "/projects/"+projectID+"/archive", alice, nil)
		require.Equal(t, http.StatusSeeOther, rr.Code)
		require.Equal(t, "/projects/archive", rr.Header().Get("Location"))

		rr = a.do(http.MethodGet, "/projects/archive", alice, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{projectID}, listIDs(t, rr))

		rr = a.do(http.MethodPut, "/projects/"+projectID+"/archive", alice, nil)
		require.Equal(t, http.StatusSeeOther, rr.Code)

		rr = a.do(http.MethodGet, "/projects/archive", alice, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, listIDs(t, rr))
	})

	t.Run("only the manager reaches the edit form", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/projects/"+projectID+"/edit", bob, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = a.do(http.MethodGet, "/projects/"+projectID+"/edit", alice, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("manager full-updates the project", func(t *testing.T) {
		rr := a.do(http.MethodPut, "/projects/"+projectID, alice, url.Values{
			"name":        {"Site Relaunch"},
			"description": {"new scope"},
			"price":       {"4000"},
		})
		require.Equal(t, http.StatusSeeOther, rr.Code)

		rr = a.do(http.MethodGet, "/projects/"+projectID, alice, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Site Relaunch")
	})

	t.Run("manager deletes and the project stays gone", func(t *testing.T) {
		rr := a.do(http.MethodDelete, "/projects/"+projectID, alice, nil)
		require.Equal(t, http.StatusSeeOther, rr.Code)
		require.Equal(t, "/projects/manager", rr.Header().Get("Location"))

		rr = a.do(http.MethodGet, "/projects/"+projectID, alice, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
