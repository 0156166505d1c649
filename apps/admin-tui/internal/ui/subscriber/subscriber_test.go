package subscriber

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/audit"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/oyaguma3/lte-nms/pkg/validation"
)

const (
	testNetwork = "net1"
	testKeyHex  = "465b5ce8b199b49faa5f0a2ee238a6bc"
)

func testSubscriber(imsi, name string) *model.Subscriber {
	key, _ := validation.DecodeHexKey(testKeyHex)
	sub := model.NewSubscriber(imsi, model.StateActive, key, nil, "", []string{"internet"})
	sub.Name = name
	return sub
}

func TestListScreen_Load(t *testing.T) {
	api := newFakeAPI(
		testSubscriber("001010000000002", "bob"),
		testSubscriber("001010000000001", "alice"),
	)
	screen := NewListScreen(ui.NewApp(), api, testNetwork)

	if err := screen.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := screen.GetTable().GetRowCount(); got != 3 {
		t.Errorf("row count = %d, want header + 2", got)
	}
	if got := screen.SelectedID(); got != "IMSI001010000000001" {
		t.Errorf("SelectedID() = %q, want first subscriber", got)
	}
	if got := screen.GetTable().GetCell(1, 5).Text; got != "465b5ce8...a6bc" {
		t.Errorf("key cell = %q, want masked key", got)
	}

	screen.SetFilter("BOB")
	if got := screen.SelectedID(); got != "IMSI001010000000002" {
		t.Errorf("SelectedID() after filter = %q", got)
	}
	if !strings.Contains(screen.GetTable().GetTitle(), `Filter: "BOB"`) {
		t.Errorf("title = %q, want filter status", screen.GetTable().GetTitle())
	}

	screen.SetFilter("nobody")
	if got := screen.SelectedID(); got != "" {
		t.Errorf("SelectedID() with no matches = %q, want empty", got)
	}
}

func TestListScreen_LoadError(t *testing.T) {
	api := newFakeAPI()
	api.listErr = magma.ErrCircuitOpen
	screen := NewListScreen(ui.NewApp(), api, testNetwork)

	if err := screen.Load(context.Background()); !errors.Is(err, apperr.ErrBackendCommunication) {
		t.Errorf("Load() error = %v, want backend communication error", err)
	}
}

func newTestForm(api magma.SubscriberAPI) (*FormScreen, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := audit.NewLoggerWithWriter(&buf, "admin-tui", nil)
	form := NewFormScreen(ui.NewApp(), api, testNetwork, logger, audit.Actor{User: "op"},
		FormOptions{SubProfiles: []string{"default", "gold"}, APNs: []string{"internet", "ims"}})
	return form, &buf
}

func TestFormScreen_Create(t *testing.T) {
	api := newFakeAPI()
	form, auditBuf := newTestForm(api)
	form.SetupCreate()

	form.imsi.SetText("001010000000009")
	form.name.SetText("carol")
	form.authKey.SetText(strings.ToUpper(testKeyHex))
	form.state.Select("INACTIVE")
	form.profile.Select("gold")
	form.apns.SetTokens([]string{"internet", "ims"})

	id, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if id != "IMSI001010000000009" {
		t.Errorf("id = %q", id)
	}

	saved := api.subs[id]
	if saved.State() != model.StateInactive || saved.LTE.SubProfile != "gold" || saved.Name != "carol" {
		t.Errorf("saved = %+v / %+v", saved, saved.LTE)
	}
	if strings.Join(saved.ActiveAPNs, ",") != "internet,ims" {
		t.Errorf("ActiveAPNs = %v", saved.ActiveAPNs)
	}
	if !strings.Contains(auditBuf.String(), `"operation":"create"`) {
		t.Errorf("audit log missing create: %s", auditBuf.String())
	}
}

func TestFormScreen_Edit(t *testing.T) {
	existing := testSubscriber("001010000000001", "alice")
	existing.LTE.SubProfile = "legacy"
	api := newFakeAPI(existing)
	form, auditBuf := newTestForm(api)

	if err := form.SetupEdit(context.Background(), existing.ID); err != nil {
		t.Fatalf("SetupEdit() error = %v", err)
	}
	if form.profile.Value() != "legacy" {
		t.Errorf("profile = %q, want existing value kept", form.profile.Value())
	}
	if form.authKey.GetText() != testKeyHex {
		t.Errorf("authKey = %q", form.authKey.GetText())
	}

	form.name.SetText("alice2")
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if api.subs[existing.ID].Name != "alice2" {
		t.Errorf("Name = %q, want alice2", api.subs[existing.ID].Name)
	}
	if !strings.Contains(auditBuf.String(), `"operation":"update"`) {
		t.Errorf("audit log missing update: %s", auditBuf.String())
	}
}

func TestFormScreen_EditNotFound(t *testing.T) {
	form, _ := newTestForm(newFakeAPI())
	if err := form.SetupEdit(context.Background(), "IMSI001010000000001"); !errors.Is(err, apperr.ErrSubscriberNotFound) {
		t.Errorf("SetupEdit() error = %v, want not found", err)
	}
}

func TestFormScreen_SubmitErrors(t *testing.T) {
	api := newFakeAPI(testSubscriber("001010000000001", ""))
	form, auditBuf := newTestForm(api)
	form.SetupCreate()

	form.imsi.SetText("123")
	_, err := form.Submit(context.Background())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if msg := saveErrorMessage(err); !strings.HasPrefix(msg, "IMSI: ") {
		t.Errorf("saveErrorMessage() = %q, want first field error", msg)
	}

	form.imsi.SetText("001010000000001")
	form.authKey.SetText(testKeyHex)
	_, err = form.Submit(context.Background())
	if !errors.Is(err, apperr.ErrSubscriberExists) {
		t.Errorf("Submit() error = %v, want exists", err)
	}
	if auditBuf.Len() != 0 {
		t.Errorf("failed saves should not be audited: %s", auditBuf.String())
	}

	if msg := saveErrorMessage(magma.ErrCircuitOpen); !strings.Contains(msg, "unavailable") {
		t.Errorf("saveErrorMessage(circuit open) = %q", msg)
	}
}
