package validation

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/model"
)

// フィールド名
const (
	FieldIMSI       = "IMSI"
	FieldName       = "Name"
	FieldState      = "State"
	FieldAuthKey    = "Auth Key"
	FieldAuthOPc    = "Auth OPc"
	FieldSubProfile = "Sub Profile"
	FieldAPNs       = "APNs"
)

// ValidateIMSI はIMSI（"IMSI"プレフィックスなし）のバリデーションを行う。
func ValidateIMSI(imsi string) error {
	if imsi == "" {
		return apperr.NewValidationError(FieldIMSI, "required")
	}
	if !IMSIPattern.MatchString(imsi) {
		return apperr.NewValidationError(FieldIMSI, "must be 10 to 15 digits")
	}
	return nil
}

// ValidateState は加入者状態のバリデーションを行う。
func ValidateState(state string) error {
	if !model.SubscriberState(state).Valid() {
		return apperr.NewValidationError(FieldState, fmt.Sprintf("must be %s or %s", model.StateActive, model.StateInactive))
	}
	return nil
}

// ValidateHexKey は16進数表記の鍵のバリデーションを行う。
// requiredがfalseの場合、空文字は許可する。
func ValidateHexKey(field, value string, required bool) error {
	if value == "" {
		if required {
			return apperr.NewValidationError(field, "required")
		}
		return nil
	}
	if !HexKeyPattern.MatchString(value) {
		return apperr.NewValidationError(field, "must be 32 hex characters")
	}
	return nil
}

// ValidateAPNs はAPN一覧のバリデーションを行う。
func ValidateAPNs(apns []string) error {
	if len(apns) > MaxAPNs {
		return apperr.NewValidationError(FieldAPNs, fmt.Sprintf("must be at most %d entries", MaxAPNs))
	}
	for _, apn := range apns {
		if !APNPattern.MatchString(apn) {
			return apperr.NewValidationError(FieldAPNs, fmt.Sprintf("invalid APN %q", apn))
		}
	}
	return nil
}

// DecodeHexKey は32桁の16進数を16バイトに変換する。形式が不正な場合はfalseを返す。
func DecodeHexKey(h string) ([]byte, bool) {
	if !HexKeyPattern.MatchString(h) {
		return nil, false
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, false
	}
	return b, true
}

// SubscriberInput はフォームやAPIから受け取る加入者の入力データを表す。
// 鍵は16進数表記で受け取る。
type SubscriberInput struct {
	IMSI       string   `json:"imsi"`
	Name       string   `json:"name,omitempty"`
	State      string   `json:"state"`
	AuthKey    string   `json:"auth_key"`
	AuthOPc    string   `json:"auth_opc,omitempty"`
	SubProfile string   `json:"sub_profile,omitempty"`
	APNs       []string `json:"active_apns,omitempty"`
}

// Normalize は入力データを正規化した複製を返す。
// 前後の空白を除去し、IMSIのプレフィックスを取り除き、鍵を小文字にする。
func (in *SubscriberInput) Normalize() *SubscriberInput {
	apns := make([]string, 0, len(in.APNs))
	for _, apn := range in.APNs {
		if apn = strings.TrimSpace(apn); apn != "" {
			apns = append(apns, apn)
		}
	}
	subProfile := strings.TrimSpace(in.SubProfile)
	if subProfile == "" {
		subProfile = model.DefaultSubProfile
	}
	return &SubscriberInput{
		IMSI:       model.IMSIFromID(strings.TrimSpace(in.IMSI)),
		Name:       strings.TrimSpace(in.Name),
		State:      strings.ToUpper(strings.TrimSpace(in.State)),
		AuthKey:    strings.ToLower(strings.TrimSpace(in.AuthKey)),
		AuthOPc:    strings.ToLower(strings.TrimSpace(in.AuthOPc)),
		SubProfile: subProfile,
		APNs:       apns,
	}
}

// Validate は入力データの全体バリデーションを行う。Normalize済みの入力を想定する。
func (in *SubscriberInput) Validate() []error {
	var errs []error

	if err := ValidateIMSI(in.IMSI); err != nil {
		errs = append(errs, err)
	}
	if utf8.RuneCountInString(in.Name) > MaxNameLength {
		errs = append(errs, apperr.NewValidationError(FieldName, fmt.Sprintf("must be at most %d characters", MaxNameLength)))
	}
	if err := ValidateState(in.State); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateHexKey(FieldAuthKey, in.AuthKey, true); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateHexKey(FieldAuthOPc, in.AuthOPc, false); err != nil {
		errs = append(errs, err)
	}
	if !SubProfilePattern.MatchString(in.SubProfile) {
		errs = append(errs, apperr.NewValidationError(FieldSubProfile, "must be 1 to 64 alphanumeric, hyphen or underscore characters"))
	}
	if err := ValidateAPNs(in.APNs); err != nil {
		errs = append(errs, err)
	}

	return errs
}

// ToSubscriber は入力を正規化・検証してSubscriberに変換する。
// 検証エラーはすべてerrors.Joinでまとめて返す。
func (in *SubscriberInput) ToSubscriber() (*model.Subscriber, error) {
	n := in.Normalize()
	if errs := n.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	key, _ := DecodeHexKey(n.AuthKey)
	var opc []byte
	if n.AuthOPc != "" {
		opc, _ = DecodeHexKey(n.AuthOPc)
	}

	sub := model.NewSubscriber(n.IMSI, model.SubscriberState(n.State), key, opc, n.SubProfile, n.APNs)
	sub.Name = n.Name
	return sub, nil
}

// InputFromSubscriber は既存の加入者を編集用の入力データに変換する。
func InputFromSubscriber(sub *model.Subscriber) *SubscriberInput {
	in := &SubscriberInput{
		IMSI: sub.IMSI(),
		Name: sub.Name,
		APNs: append([]string(nil), sub.ActiveAPNs...),
	}
	if sub.LTE != nil {
		in.State = string(sub.LTE.State)
		in.AuthKey = hex.EncodeToString(sub.LTE.AuthKey)
		in.AuthOPc = hex.EncodeToString(sub.LTE.AuthOPc)
		in.SubProfile = sub.LTE.SubProfile
	}
	return in
}

// ValidateSubscriber はAPIで受け取った加入者JSONのバリデーションを行う。
func ValidateSubscriber(sub *model.Subscriber) error {
	if sub == nil {
		return apperr.NewValidationError("body", "required")
	}
	if !model.ValidSubscriberID(sub.ID) {
		return apperr.NewValidationError("id", "must be IMSI followed by 10 to 15 digits")
	}
	if sub.LTE == nil {
		return apperr.NewValidationError("lte", "required")
	}
	if err := ValidateState(string(sub.LTE.State)); err != nil {
		return err
	}
	if len(sub.LTE.AuthKey) != KeyLength {
		return apperr.NewValidationError("lte.auth_key", fmt.Sprintf("must be %d bytes", KeyLength))
	}
	if len(sub.LTE.AuthOPc) != 0 && len(sub.LTE.AuthOPc) != KeyLength {
		return apperr.NewValidationError("lte.auth_opc", fmt.Sprintf("must be %d bytes", KeyLength))
	}
	return ValidateAPNs(sub.ActiveAPNs)
}
