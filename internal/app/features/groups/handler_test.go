package groups_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brainhive/brainhive/internal/app/features/groups"
	"github.com/brainhive/brainhive/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestHandleCreate_PendingAndDualWrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	h := groups.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/groups", map[string]string{
		"title":       "Calc Study",
		"subject":     "Calculus",
		"description": "Weekly problem sessions",
	})
	req = testutil.AsUser(req, creator)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Group struct {
			ID      primitive.ObjectID `json:"id"`
			Status  string             `json:"status"`
			Members []struct {
				ID primitive.ObjectID `json:"id"`
			} `json:"members"`
		} `json:"group"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if resp.Group.Status != "pending" {
		t.Errorf("status: got %q, want pending", resp.Group.Status)
	}
	if len(resp.Group.Members) != 1 || resp.Group.Members[0].ID != creator.ID {
		t.Errorf("members: got %+v", resp.Group.Members)
	}

	// Creator's joined-groups side of the relation is written too.
	u, err := h.Users.GetByID(ctx, creator.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !u.HasJoined(resp.Group.ID) {
		t.Error("creator's groups_joined missing the new group")
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	h := groups.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/groups", map[string]string{
		"title": "No subject or description",
	})
	req = testutil.AsUser(req, creator)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleJoin_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	joiner := f.CreateUser(ctx, "Bob", "bob@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", creator.ID)
	h := groups.NewHandler(db, zap.NewNop())

	join := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/groups/"+g.ID.Hex()+"/join", nil)
		req = testutil.AsUser(req, joiner)
		req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleJoin(rec, req)
		return rec
	}

	if rec := join(); rec.Code != http.StatusOK {
		t.Fatalf("first join: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := join(); rec.Code != http.StatusOK {
		t.Fatalf("second join: expected 200, got %d", rec.Code)
	}

	got, err := h.Groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 2 {
		t.Errorf("expected 2 members after double join, got %d", len(got.Members))
	}

	u, err := h.Users.GetByID(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !u.HasJoined(g.ID) {
		t.Error("joiner's groups_joined missing the group")
	}
}

func TestHandleJoin_GroupNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	h := groups.NewHandler(db, zap.NewNop())

	missing := primitive.NewObjectID()
	req := httptest.NewRequest("POST", "/groups/"+missing.Hex()+"/join", nil)
	req = testutil.AsUser(req, u)
	req = testutil.WithChiURLParam(req, "id", missing.Hex())
	rec := httptest.NewRecorder()
	h.HandleJoin(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleLeave_RemovesBothSides(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	member := f.CreateUser(ctx, "Bob", "bob@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", creator.ID, member.ID)
	h := groups.NewHandler(db, zap.NewNop())

	req := httptest.NewRequest("POST", "/groups/"+g.ID.Hex()+"/leave", nil)
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleLeave(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := h.Groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.HasMember(member.ID) {
		t.Error("member list still contains the leaver")
	}

	u, err := h.Users.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if u.HasJoined(g.ID) {
		t.Error("leaver's groups_joined still references the group")
	}
}

func TestHandlePostMessage_MemberOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	outsider := f.CreateUser(ctx, "Eve", "eve@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", creator.ID)
	h := groups.NewHandler(db, zap.NewNop())

	// Member posts.
	req := testutil.NewJSONRequest(t, "POST", "/groups/"+g.ID.Hex()+"/message", map[string]string{"text": "hi all"})
	req = testutil.AsUser(req, creator)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandlePostMessage(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("member post: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Non-member is rejected.
	req = testutil.NewJSONRequest(t, "POST", "/groups/"+g.ID.Hex()+"/message", map[string]string{"text": "let me in"})
	req = testutil.AsUser(req, outsider)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandlePostMessage(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-member post: expected 403, got %d", rec.Code)
	}

	// Empty text is rejected before any store work.
	req = testutil.NewJSONRequest(t, "POST", "/groups/"+g.ID.Hex()+"/message", map[string]string{"text": "   "})
	req = testutil.AsUser(req, creator)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandlePostMessage(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty post: expected 400, got %d", rec.Code)
	}
}

func TestHandlePostMessage_SanitizesText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", creator.ID)
	h := groups.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/groups/"+g.ID.Hex()+"/message",
		map[string]string{"text": "<script>alert(1)</script>see you at 5"})
	req = testutil.AsUser(req, creator)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandlePostMessage(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	got, err := h.Groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Text != "see you at 5" {
		t.Errorf("stored text: got %+v", got.Messages)
	}
}

func TestMessageEditDelete_AuthorOrAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	author := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	other := f.CreateUser(ctx, "Bob", "bob@test.com", "user")
	admin := f.CreateAdmin(ctx, "Root", "root@test.com")
	g := f.CreateGroup(ctx, "Calc Study", "approved", author.ID, other.ID)
	msg := f.AddMessage(ctx, g.ID, author.ID, "original")
	h := groups.NewHandler(db, zap.NewNop())

	edit := func(as primitive.ObjectID, role, text string) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(t, "PUT",
			"/groups/"+g.ID.Hex()+"/message/"+msg.ID.Hex(), map[string]string{"text": text})
		req = testutil.AsIdentity(req, as, role)
		req = testutil.WithChiURLParam(req, "groupId", g.ID.Hex())
		req = testutil.WithChiURLParam(req, "messageId", msg.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleEditMessage(rec, req)
		return rec
	}

	// A different member is not the author: forbidden.
	if rec := edit(other.ID, "user", "hijack"); rec.Code != http.StatusForbidden {
		t.Errorf("non-author edit: expected 403, got %d", rec.Code)
	}

	// The author may edit.
	if rec := edit(author.ID, "user", "fixed typo"); rec.Code != http.StatusOK {
		t.Errorf("author edit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// An admin may edit anyone's message.
	if rec := edit(admin.ID, "admin", "admin note"); rec.Code != http.StatusOK {
		t.Errorf("admin edit: expected 200, got %d", rec.Code)
	}

	// Delete by a non-author fails, by the author succeeds.
	del := func(as primitive.ObjectID, role string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/groups/"+g.ID.Hex()+"/message/"+msg.ID.Hex(), nil)
		req = testutil.AsIdentity(req, as, role)
		req = testutil.WithChiURLParam(req, "groupId", g.ID.Hex())
		req = testutil.WithChiURLParam(req, "messageId", msg.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleDeleteMessage(rec, req)
		return rec
	}

	if rec := del(other.ID, "user"); rec.Code != http.StatusForbidden {
		t.Errorf("non-author delete: expected 403, got %d", rec.Code)
	}
	if rec := del(author.ID, "user"); rec.Code != http.StatusOK {
		t.Errorf("author delete: expected 200, got %d", rec.Code)
	}
	if rec := del(author.ID, "user"); rec.Code != http.StatusNotFound {
		t.Errorf("delete of gone message: expected 404, got %d", rec.Code)
	}
}

func TestMessageEdit_AuthorKeepsRightsAfterLeaving(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	author := f.CreateUser(ctx, "Bob", "bob@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", creator.ID, author.ID)
	msg := f.AddMessage(ctx, g.ID, author.ID, "before leaving")
	h := groups.NewHandler(db, zap.NewNop())

	// Author leaves the group.
	req := httptest.NewRequest("POST", "/groups/"+g.ID.Hex()+"/leave", nil)
	req = testutil.AsUser(req, author)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleLeave(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("leave failed: %d", rec.Code)
	}

	// Authorship still grants edit rights; membership is not re-checked.
	req = testutil.NewJSONRequest(t, "PUT",
		"/groups/"+g.ID.Hex()+"/message/"+msg.ID.Hex(), map[string]string{"text": "still mine"})
	req = testutil.AsUser(req, author)
	req = testutil.WithChiURLParam(req, "groupId", g.ID.Hex())
	req = testutil.WithChiURLParam(req, "messageId", msg.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleEditMessage(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected author to keep edit rights after leaving, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestModeration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "pending", creator.ID)
	h := groups.NewHandler(db, zap.NewNop())

	approve := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", "/groups/"+id+"/approve", nil)
		req = testutil.WithChiURLParam(req, "id", id)
		rec := httptest.NewRecorder()
		h.HandleApprove(rec, req)
		return rec
	}

	if rec := approve(g.ID.Hex()); rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d", rec.Code)
	}
	got, _ := h.Groups.GetByID(ctx, g.ID)
	if got.Status != "approved" {
		t.Errorf("status: got %q", got.Status)
	}

	if rec := approve(primitive.NewObjectID().Hex()); rec.Code != http.StatusNotFound {
		t.Errorf("approve missing: expected 404, got %d", rec.Code)
	}

	req := httptest.NewRequest("PUT", "/groups/"+g.ID.Hex()+"/reject", nil)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleReject(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reject: expected 200, got %d", rec.Code)
	}
	got, _ = h.Groups.GetByID(ctx, g.ID)
	if got.Status != "rejected" {
		t.Errorf("status: got %q", got.Status)
	}

	req = httptest.NewRequest("DELETE", "/groups/"+g.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if _, err := h.Groups.GetByID(ctx, g.ID); err == nil {
		t.Error("expected group gone after delete")
	}
}

func TestServeGroup_ResolvesRefs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", creator.ID)
	f.AddMessage(ctx, g.ID, creator.ID, "welcome")
	h := groups.NewHandler(db, zap.NewNop())

	req := httptest.NewRequest("GET", "/group/"+g.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeGroup(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view struct {
		CreatedBy *struct {
			Name string `json:"name"`
		} `json:"createdBy"`
		Messages []struct {
			Author *struct {
				Name string `json:"name"`
			} `json:"author"`
			Text string `json:"text"`
		} `json:"messages"`
	}
	testutil.DecodeJSON(t, rec, &view)

	if view.CreatedBy == nil || view.CreatedBy.Name != "Ada" {
		t.Errorf("createdBy not resolved: %+v", view.CreatedBy)
	}
	if len(view.Messages) != 1 || view.Messages[0].Author == nil || view.Messages[0].Author.Name != "Ada" {
		t.Errorf("message author not resolved: %+v", view.Messages)
	}
}

func TestEndToEndOwnershipRule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	userA := f.CreateUser(ctx, "Alice", "alice@test.com", "user")
	userB := f.CreateUser(ctx, "Ben", "ben@test.com", "user")
	h := groups.NewHandler(db, zap.NewNop())

	// A creates G: pending, members=[A].
	req := testutil.NewJSONRequest(t, "POST", "/groups", map[string]string{
		"title": "G", "subject": "S", "description": "D",
	})
	req = testutil.AsUser(req, userA)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d", rec.Code)
	}
	var created struct {
		Group struct {
			ID primitive.ObjectID `json:"id"`
		} `json:"group"`
	}
	testutil.DecodeJSON(t, rec, &created)
	gid := created.Group.ID

	// Admin approves G.
	req = httptest.NewRequest("PUT", "/groups/"+gid.Hex()+"/approve", nil)
	req = testutil.WithChiURLParam(req, "id", gid.Hex())
	rec = httptest.NewRecorder()
	h.HandleApprove(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: got %d", rec.Code)
	}

	// B joins: members=[A,B].
	req = httptest.NewRequest("POST", "/groups/"+gid.Hex()+"/join", nil)
	req = testutil.AsUser(req, userB)
	req = testutil.WithChiURLParam(req, "id", gid.Hex())
	rec = httptest.NewRecorder()
	h.HandleJoin(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("join: got %d", rec.Code)
	}

	// B posts "hi".
	req = testutil.NewJSONRequest(t, "POST", "/groups/"+gid.Hex()+"/message", map[string]string{"text": "hi"})
	req = testutil.AsUser(req, userB)
	req = testutil.WithChiURLParam(req, "id", gid.Hex())
	rec = httptest.NewRecorder()
	h.HandlePostMessage(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("post: got %d", rec.Code)
	}
	var posted struct {
		Data struct {
			ID primitive.ObjectID `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, rec, &posted)

	// A is neither the author nor an admin: deletion is forbidden.
	req = httptest.NewRequest("DELETE", "/groups/"+gid.Hex()+"/message/"+posted.Data.ID.Hex(), nil)
	req = testutil.AsUser(req, userA)
	req = testutil.WithChiURLParam(req, "groupId", gid.Hex())
	req = testutil.WithChiURLParam(req, "messageId", posted.Data.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleDeleteMessage(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("creator deleting another member's message: expected 403, got %d", rec.Code)
	}
}
