package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal 一次请求已解析的调用者身份，只携带 id + role
type Principal struct {
	ID   string
	Role string
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// CanMutate 所有写操作共用的唯一规则：admin 或资源 owner
func (p Principal) CanMutate(ownerID string) bool {
	return p.Role == RoleAdmin || p.ID == ownerID
}
