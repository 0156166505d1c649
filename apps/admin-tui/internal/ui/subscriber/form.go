package subscriber

import (
	"context"
	"errors"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/lte-nms/pkg/audit"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/model"
	"github.com/oyaguma3/lte-nms/pkg/validation"
	"github.com/rivo/tview"
)

// FormOptions は選択肢として提示する値を表す。
type FormOptions struct {
	SubProfiles []string // サブプロファイルの選択肢
	APNs        []string // APN入力の補完候補
}

// FormScreen は加入者登録/編集画面を表す。
type FormScreen struct {
	form      *tview.Form
	app       *ui.App
	api       magma.SubscriberAPI
	networkID string
	audit     *audit.Logger
	actor     audit.Actor
	options   FormOptions
	editID    string

	imsi    *tview.InputField
	name    *tview.InputField
	authKey *tview.InputField
	authOPc *tview.InputField
	state   *ui.SelectMenu
	profile *ui.SelectMenu
	apns    *ui.Tokenizer

	onSave   func()
	onCancel func()
}

// NewFormScreen は新しいFormScreenを生成する。
func NewFormScreen(app *ui.App, api magma.SubscriberAPI, networkID string, auditLogger *audit.Logger, actor audit.Actor, opts FormOptions) *FormScreen {
	form := tview.NewForm()
	form.SetBorder(true).
		SetBorderColor(ui.ColorBorder)

	if len(opts.SubProfiles) == 0 {
		opts.SubProfiles = []string{model.DefaultSubProfile}
	}

	s := &FormScreen{
		form:      form,
		app:       app,
		api:       api,
		networkID: networkID,
		audit:     auditLogger,
		actor:     actor,
		options:   opts,
	}
	s.setupKeyBindings()
	return s
}

// SetOnSave は保存時のコールバックを設定する。
func (s *FormScreen) SetOnSave(handler func()) {
	s.onSave = handler
}

// SetOnCancel はキャンセル時のコールバックを設定する。
func (s *FormScreen) SetOnCancel(handler func()) {
	s.onCancel = handler
}

// GetForm は内部のtview.Formを返す。
func (s *FormScreen) GetForm() *tview.Form {
	return s.form
}

// SetupCreate は新規作成モードでフォームをセットアップする。
func (s *FormScreen) SetupCreate() {
	s.editID = ""
	s.form.SetTitle(" Create Subscriber ")
	s.build(&validation.SubscriberInput{
		State:      string(model.StateActive),
		SubProfile: s.options.SubProfiles[0],
	})
}

// SetupEdit はオーケストレータから加入者を取得し、編集モードでフォームをセットアップする。
func (s *FormScreen) SetupEdit(ctx context.Context, id string) error {
	sub, err := s.api.GetSubscriber(ctx, s.networkID, id)
	if err != nil {
		return err
	}
	s.editID = sub.ID
	s.form.SetTitle(" Edit Subscriber ")
	s.build(validation.InputFromSubscriber(sub))
	return nil
}

func (s *FormScreen) build(in *validation.SubscriberInput) {
	s.form.Clear(true)

	s.imsi = tview.NewInputField().SetLabel(validation.FieldIMSI).SetText(in.IMSI).SetFieldWidth(20)
	s.name = tview.NewInputField().SetLabel(validation.FieldName).SetText(in.Name).SetFieldWidth(30)
	s.authKey = tview.NewInputField().SetLabel(validation.FieldAuthKey).SetText(in.AuthKey).SetFieldWidth(34)
	s.authOPc = tview.NewInputField().SetLabel(validation.FieldAuthOPc).SetText(in.AuthOPc).SetFieldWidth(34)

	s.state = ui.NewSelectMenu(s.app, validation.FieldState, []string{string(model.StateActive), string(model.StateInactive)})
	s.state.Select(in.State)

	profiles := s.options.SubProfiles
	if in.SubProfile != "" && !slices.Contains(profiles, in.SubProfile) {
		profiles = append(slices.Clone(profiles), in.SubProfile)
	}
	s.profile = ui.NewSelectMenu(s.app, validation.FieldSubProfile, profiles)
	s.profile.Select(in.SubProfile)

	s.apns = ui.NewTokenizer(s.app, validation.FieldAPNs, s.options.APNs)
	s.apns.SetTokens(in.APNs)

	// 編集モードではIMSIは変更不可
	s.imsi.SetDisabled(s.editID != "")

	s.form.
		AddFormItem(s.imsi).
		AddFormItem(s.name).
		AddFormItem(s.state).
		AddFormItem(s.authKey).
		AddFormItem(s.authOPc).
		AddFormItem(s.profile).
		AddFormItem(s.apns).
		AddButton("Save", s.handleSave).
		AddButton("Cancel", s.handleCancel)
}

// Input はフォームの現在値を入力データとして返す。
func (s *FormScreen) Input() *validation.SubscriberInput {
	return &validation.SubscriberInput{
		IMSI:       s.imsi.GetText(),
		Name:       s.name.GetText(),
		State:      s.state.Value(),
		AuthKey:    s.authKey.GetText(),
		AuthOPc:    s.authOPc.GetText(),
		SubProfile: s.profile.Value(),
		APNs:       s.apns.Tokens(),
	}
}

// Submit はフォームの内容を検証してオーケストレータに登録または更新する。
// 保存した加入者IDを返す。
func (s *FormScreen) Submit(ctx context.Context) (string, error) {
	sub, err := s.Input().ToSubscriber()
	if err != nil {
		return "", err
	}

	if s.editID != "" {
		sub.ID = s.editID
		if err := s.api.UpdateSubscriber(ctx, s.networkID, sub); err != nil {
			return "", err
		}
		s.audit.LogUpdate(s.actor, s.networkID, sub.ID)
		return sub.ID, nil
	}

	id, err := s.api.CreateSubscriber(ctx, s.networkID, sub)
	if err != nil {
		return "", err
	}
	s.audit.LogCreate(s.actor, s.networkID, id)
	return id, nil
}

func (s *FormScreen) handleSave() {
	id, err := s.Submit(context.Background())
	if err != nil {
		s.app.GetStatusBar().ShowError(saveErrorMessage(err))
		return
	}

	if s.editID != "" {
		s.app.GetStatusBar().ShowSuccess("Subscriber updated: " + id)
	} else {
		s.app.GetStatusBar().ShowSuccess("Subscriber created: " + id)
	}
	if s.onSave != nil {
		s.onSave()
	}
}

// saveErrorMessage はステータスバーに表示する1行のエラーメッセージを返す。
// 複数の検証エラーは先頭のみ表示する。
func saveErrorMessage(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return errs[0].Error()
		}
	}
	switch {
	case errors.Is(err, magma.ErrCircuitOpen):
		return "Orchestrator is unavailable, try again later"
	default:
		return "Failed to save: " + err.Error()
	}
}

func (s *FormScreen) handleCancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}

func (s *FormScreen) setupKeyBindings() {
	s.form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyEsc {
			return event
		}
		// 候補表示中のEscは入力欄側で閉じる
		if s.apns != nil && s.apns.SuggestionsShown() {
			return event
		}
		s.handleCancel()
		return nil
	})
}
