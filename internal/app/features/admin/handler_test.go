package admin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brainhive/brainhive/internal/app/features/admin"
	userstore "github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestServeUsers_ResolvesJoinedGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	f.CreateGroup(ctx, "Calc Study", "approved", u.ID)
	h := admin.NewHandler(db, zap.NewNop())

	req := httptest.NewRequest("GET", "/admin/users", nil)
	rec := httptest.NewRecorder()
	h.ServeUsers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var views []struct {
		Email        string `json:"email"`
		GroupsJoined []struct {
			Title string `json:"title"`
		} `json:"groupsJoined"`
	}
	testutil.DecodeJSON(t, rec, &views)

	if len(views) != 1 {
		t.Fatalf("expected 1 user, got %d", len(views))
	}
	if len(views[0].GroupsJoined) != 1 || views[0].GroupsJoined[0].Title != "Calc Study" {
		t.Errorf("joined groups not resolved: %+v", views[0].GroupsJoined)
	}
}

func TestSuspendAndReinstate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	h := admin.NewHandler(db, zap.NewNop())
	fetcher := userstore.NewFetcher(db)

	setStatus := func(action string, fn http.HandlerFunc) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", "/admin/users/"+u.ID.Hex()+"/"+action, nil)
		req = testutil.WithChiURLParam(req, "id", u.ID.Hex())
		rec := httptest.NewRecorder()
		fn(rec, req)
		return rec
	}

	if rec := setStatus("suspend", h.HandleSuspend); rec.Code != http.StatusOK {
		t.Fatalf("suspend: expected 200, got %d", rec.Code)
	}

	// A suspended account is invisible to the auth fetcher, so in-flight
	// tokens stop working immediately.
	if ident := fetcher.FetchUser(context.Background(), u.ID.Hex()); ident != nil {
		t.Error("fetcher should return nil for a suspended account")
	}

	if rec := setStatus("reinstate", h.HandleReinstate); rec.Code != http.StatusOK {
		t.Fatalf("reinstate: expected 200, got %d", rec.Code)
	}
	if ident := fetcher.FetchUser(context.Background(), u.ID.Hex()); ident == nil {
		t.Error("fetcher should see a reinstated account")
	}
}

func TestSuspend_UnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := admin.NewHandler(db, zap.NewNop())

	missing := primitive.NewObjectID()
	req := httptest.NewRequest("PUT", "/admin/users/"+missing.Hex()+"/suspend", nil)
	req = testutil.WithChiURLParam(req, "id", missing.Hex())
	rec := httptest.NewRecorder()
	h.HandleSuspend(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
