package model

import "slices"

// Organization はNMSのテナント（組織）を表す。
// Valkeyキー: org:{Name}（許可ネットワークIDのSet）
type Organization struct {
	Name      string   `json:"name"`
	Networks  []string `json:"networks"`  // 操作を許可されたネットワークID
	Superuser bool     `json:"superuser"` // 全ネットワークを操作可能
}

// CanAccess は指定されたネットワークを操作できるかどうかを返す。
func (o *Organization) CanAccess(networkID string) bool {
	if o == nil {
		return false
	}
	return o.Superuser || slices.Contains(o.Networks, networkID)
}

// FilterNetworks はネットワークID一覧のうち操作可能なものを返す。
func (o *Organization) FilterNetworks(ids []string) []string {
	allowed := make([]string, 0, len(ids))
	for _, id := range ids {
		if o.CanAccess(id) {
			allowed = append(allowed, id)
		}
	}
	return allowed
}
