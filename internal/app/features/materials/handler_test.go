package materials_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brainhive/brainhive/internal/app/features/materials"
	"github.com/brainhive/brainhive/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*materials.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h, err := materials.NewHandler(db, 32<<20, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHandler failed: %v", err)
	}
	return h, testutil.NewFixtures(t, db)
}

func TestUploadThenDownload_ByteIdentical(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", member.ID)

	content := []byte("%PDF-1.4 lecture notes content")
	req := testutil.NewMultipartFileRequest(t,
		"/api/materials/"+g.ID.Hex()+"/materials", "notes.pdf", "application/pdf", content)
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Material struct {
			Filename string             `json:"filename"`
			FileID   primitive.ObjectID `json:"fileId"`
		} `json:"material"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Material.Filename != "notes.pdf" || resp.Material.FileID.IsZero() {
		t.Fatalf("unexpected material: %+v", resp.Material)
	}

	// The material record lands on the group.
	got, err := h.Groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Materials) != 1 || got.Materials[0].FileID != resp.Material.FileID {
		t.Errorf("group materials: %+v", got.Materials)
	}

	// Public download by filename returns the identical bytes.
	dreq := httptest.NewRequest("GET", "/api/materials/file/notes.pdf", nil)
	dreq = testutil.WithChiURLParam(dreq, "filename", "notes.pdf")
	drec := httptest.NewRecorder()
	h.HandleDownloadByName(drec, dreq)

	if drec.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", drec.Code)
	}
	if ct := drec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if string(drec.Body.Bytes()) != string(content) {
		t.Error("downloaded bytes differ from uploaded bytes")
	}

	// Download by blob id works too.
	breq := httptest.NewRequest("GET", "/api/materials/blob/"+resp.Material.FileID.Hex(), nil)
	breq = testutil.WithChiURLParam(breq, "id", resp.Material.FileID.Hex())
	brec := httptest.NewRecorder()
	h.HandleDownloadByID(brec, breq)
	if brec.Code != http.StatusOK || string(brec.Body.Bytes()) != string(content) {
		t.Errorf("download by id: code %d", brec.Code)
	}
}

func TestUpload_NonMemberForbidden(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	outsider := f.CreateUser(ctx, "Eve", "eve@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", creator.ID)

	req := testutil.NewMultipartFileRequest(t,
		"/api/materials/"+g.ID.Hex()+"/materials", "notes.pdf", "application/pdf", []byte("x"))
	req = testutil.AsUser(req, outsider)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", member.ID)

	req := httptest.NewRequest("POST", "/api/materials/"+g.ID.Hex()+"/materials", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestList_MembersOnlyWithUploaderResolved(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	outsider := f.CreateUser(ctx, "Eve", "eve@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", member.ID)

	upload := testutil.NewMultipartFileRequest(t,
		"/api/materials/"+g.ID.Hex()+"/materials", "a.txt", "text/plain", []byte("hello"))
	upload = testutil.AsUser(upload, member)
	upload = testutil.WithChiURLParam(upload, "id", g.ID.Hex())
	urec := httptest.NewRecorder()
	h.HandleUpload(urec, upload)
	if urec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", urec.Code)
	}

	req := httptest.NewRequest("GET", "/api/materials/"+g.ID.Hex()+"/materials", nil)
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("member list: expected 200, got %d", rec.Code)
	}

	var views []struct {
		Filename   string `json:"filename"`
		UploadedBy *struct {
			Name string `json:"name"`
		} `json:"uploadedBy"`
	}
	testutil.DecodeJSON(t, rec, &views)
	if len(views) != 1 || views[0].Filename != "a.txt" {
		t.Fatalf("unexpected views: %+v", views)
	}
	if views[0].UploadedBy == nil || views[0].UploadedBy.Name != "Ada" {
		t.Errorf("uploader not resolved: %+v", views[0].UploadedBy)
	}

	req = httptest.NewRequest("GET", "/api/materials/"+g.ID.Hex()+"/materials", nil)
	req = testutil.AsUser(req, outsider)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleList(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider list: expected 403, got %d", rec.Code)
	}
}

func TestDownload_NotFound(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest("GET", "/api/materials/file/missing.pdf", nil)
	req = testutil.WithChiURLParam(req, "filename", "missing.pdf")
	rec := httptest.NewRecorder()
	h.HandleDownloadByName(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestFilenameCollision_MostRecentWins(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", member.ID)

	put := func(content string) {
		req := testutil.NewMultipartFileRequest(t,
			"/api/materials/"+g.ID.Hex()+"/materials", "shared.txt", "text/plain", []byte(content))
		req = testutil.AsUser(req, member)
		req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleUpload(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("upload failed: %d", rec.Code)
		}
	}
	put("first")
	put("second")

	req := httptest.NewRequest("GET", "/api/materials/file/shared.txt", nil)
	req = testutil.WithChiURLParam(req, "filename", "shared.txt")
	rec := httptest.NewRecorder()
	h.HandleDownloadByName(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("download: got %d", rec.Code)
	}
	if rec.Body.String() != "second" {
		t.Errorf("expected most recent upload, got %q", rec.Body.String())
	}
}

func TestGroupDelete_BlobStaysRetrievable(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateUser(ctx, "Ada", "ada@test.com", "user")
	g := f.CreateGroup(ctx, "Calc Study", "approved", member.ID)

	req := testutil.NewMultipartFileRequest(t,
		"/api/materials/"+g.ID.Hex()+"/materials", "orphan.txt", "text/plain", []byte("survives"))
	req = testutil.AsUser(req, member)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", rec.Code)
	}

	// Hard-delete the group; blobs are not cascaded.
	if err := h.Groups.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	dreq := httptest.NewRequest("GET", "/api/materials/file/orphan.txt", nil)
	dreq = testutil.WithChiURLParam(dreq, "filename", "orphan.txt")
	drec := httptest.NewRecorder()
	h.HandleDownloadByName(drec, dreq)
	if drec.Code != http.StatusOK || drec.Body.String() != "survives" {
		t.Errorf("blob should outlive the group: code %d body %q", drec.Code, drec.Body.String())
	}
}
