// Package model は共通データ構造体を提供する。
package model

import (
	"regexp"
	"strings"
)

// SubscriberIDPrefix は加入者IDのプレフィックス。
// オーケストレータ上の加入者IDは "IMSI" + 数字列で表現される。
const SubscriberIDPrefix = "IMSI"

// DefaultSubProfile はサブプロファイル未指定時の値。
const DefaultSubProfile = "default"

// SubscriberState はLTE加入者の状態を表す。
type SubscriberState string

const (
	// StateActive は有効な加入者
	StateActive SubscriberState = "ACTIVE"
	// StateInactive は無効な加入者
	StateInactive SubscriberState = "INACTIVE"
)

// Valid は既知の状態かどうかを返す。
func (s SubscriberState) Valid() bool {
	return s == StateActive || s == StateInactive
}

// subscriberIDPattern は加入者ID形式（IMSI + 10〜15桁の数字）
var subscriberIDPattern = regexp.MustCompile(`^IMSI[0-9]{10,15}$`)

// LTESubscription は加入者のLTE設定を表す。
// AuthKey/AuthOPcはJSON上ではbase64文字列として表現される。
type LTESubscription struct {
	State      SubscriberState `json:"state"`
	AuthKey    []byte          `json:"auth_key,omitempty"`    // 秘密鍵（16バイト）
	AuthOPc    []byte          `json:"auth_opc,omitempty"`    // オペレータ定数（16バイト）
	SubProfile string          `json:"sub_profile,omitempty"` // サブプロファイル名
}

// Subscriber は加入者情報を表す。
// オーケストレータのキー: lte/{network_id}/subscribers/{id}
type Subscriber struct {
	ID         string           `json:"id"`             // 加入者ID（IMSI + 数字）
	Name       string           `json:"name,omitempty"` // 表示名
	LTE        *LTESubscription `json:"lte"`            // LTE設定
	ActiveAPNs []string         `json:"active_apns"`    // 有効なAPN一覧
}

// NewSubscriber は新しいSubscriberを生成する。
func NewSubscriber(imsi string, state SubscriberState, authKey, authOPc []byte, subProfile string, apns []string) *Subscriber {
	if subProfile == "" {
		subProfile = DefaultSubProfile
	}
	if apns == nil {
		apns = []string{}
	}
	return &Subscriber{
		ID: SubscriberID(imsi),
		LTE: &LTESubscription{
			State:      state,
			AuthKey:    authKey,
			AuthOPc:    authOPc,
			SubProfile: subProfile,
		},
		ActiveAPNs: apns,
	}
}

// IMSI は加入者IDからIMSI部分（数字列）を返す。
func (s *Subscriber) IMSI() string {
	return IMSIFromID(s.ID)
}

// State はLTE状態を返す。LTE設定がない場合は空文字。
func (s *Subscriber) State() SubscriberState {
	if s.LTE == nil {
		return ""
	}
	return s.LTE.State
}

// SubscriberID はIMSIから加入者IDを生成する。
// 既に "IMSI" プレフィックスが付いている場合はそのまま返す。
func SubscriberID(imsi string) string {
	imsi = strings.TrimSpace(imsi)
	if imsi == "" || strings.HasPrefix(imsi, SubscriberIDPrefix) {
		return imsi
	}
	return SubscriberIDPrefix + imsi
}

// IMSIFromID は加入者IDからプレフィックスを取り除いたIMSIを返す。
func IMSIFromID(id string) string {
	return strings.TrimPrefix(id, SubscriberIDPrefix)
}

// ValidSubscriberID は加入者ID形式が正しいかどうかを返す。
func ValidSubscriberID(id string) bool {
	return subscriberIDPattern.MatchString(id)
}
