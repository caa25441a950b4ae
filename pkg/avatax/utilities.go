package avatax

// PingResult reports the service version and how the caller authenticated.
type PingResult struct {
	Version                string `json:"version,omitempty"                yaml:"version,omitempty"`
	Authenticated          bool   `json:"authenticated"                    yaml:"authenticated"`
	AuthenticationType     string `json:"authenticationType,omitempty"     yaml:"authenticationType,omitempty"`
	AuthenticatedUserName  string `json:"authenticatedUserName,omitempty"  yaml:"authenticatedUserName,omitempty"`
	AuthenticatedUserID    int64  `json:"authenticatedUserId,omitempty"    yaml:"authenticatedUserId,omitempty"`
	AuthenticatedAccountID int64  `json:"authenticatedAccountId,omitempty" yaml:"authenticatedAccountId,omitempty"`
	CrmID                  string `json:"crmid,omitempty"                  yaml:"crmid,omitempty"`
}
