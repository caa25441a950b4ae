package avatax

import (
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/avatax-client/internal/model"
)

// ListOptions are the paging and filtering parameters of IAMDS list calls.
// Zero values are omitted from the query string.
type ListOptions struct {
	// Filter is an OData style filter expression.
	Filter string
	// Top limits the number of returned items.
	Top int
	// Skip is the number of items to skip.
	Skip int
	// OrderBy sorts the result, e.g. "displayName desc".
	OrderBy string
	// Count asks the service to return the total item count.
	Count bool
	// Tags keeps only items carrying every listed tag.
	Tags []string
}

// Meta is the resource metadata IAMDS attaches to every entity.
type Meta struct {
	ResourceType string `json:"resourceType,omitempty" yaml:"resourceType,omitempty"`
	Created      string `json:"created,omitempty"      yaml:"created,omitempty"`
	LastModified string `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	Version      string `json:"version,omitempty"      yaml:"version,omitempty"`
	Location     string `json:"location,omitempty"     yaml:"location,omitempty"`
}

// UserName is the structured name of a user.
type UserName struct {
	GivenName  string `json:"givenName,omitempty"  yaml:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty" yaml:"familyName,omitempty"`
}

// Email is one email address of a user.
type Email struct {
	Value   string `json:"value"             yaml:"value"             validate:"required,email"`
	Primary bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// User is an IAMDS user.
type User struct {
	ID          string    `json:"id,omitempty"          yaml:"id,omitempty"`
	UserName    string    `json:"userName"              yaml:"userName"              validate:"required"`
	DisplayName string    `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Name        *UserName `json:"name,omitempty"        yaml:"name,omitempty"`
	Emails      []Email   `json:"emails,omitempty"      yaml:"emails,omitempty"      validate:"dive"`
	Active      bool      `json:"active"                yaml:"active"`
	Tags        []string  `json:"tags,omitempty"        yaml:"tags,omitempty"`
	Meta        *Meta     `json:"meta,omitempty"        yaml:"meta,omitempty"`
}

// UserList is one page of users.
type UserList struct {
	Items []User `json:"items"           yaml:"items"`
	Count int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Group is an IAMDS group.
type Group struct {
	ID          string   `json:"id,omitempty"          yaml:"id,omitempty"`
	DisplayName string   `json:"displayName"           yaml:"displayName"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
	Meta        *Meta    `json:"meta,omitempty"        yaml:"meta,omitempty"`
}

// GroupList is one page of groups.
type GroupList struct {
	Items []Group `json:"items"           yaml:"items"`
	Count int     `json:"count,omitempty" yaml:"count,omitempty"`
}

// MemberType discriminates group members.
type MemberType string

// Member types.
const (
	MemberTypeUser   MemberType = "user"
	MemberTypeClient MemberType = "client"
)

// Member is a group member: a *UserMember or a *ClientMember.
type Member interface {
	MemberType() MemberType
	MemberID() string
}

// UserMember is a user belonging to a group.
type UserMember struct {
	Type        MemberType `json:"type"                  yaml:"type"`
	ID          string     `json:"id"                    yaml:"id"`
	UserName    string     `json:"userName,omitempty"    yaml:"userName,omitempty"`
	DisplayName string     `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// MemberType implements Member.
func (m *UserMember) MemberType() MemberType { return MemberTypeUser }

// MemberID implements Member.
func (m *UserMember) MemberID() string { return m.ID }

// ClientMember is an OAuth client belonging to a group.
type ClientMember struct {
	Type       MemberType `json:"type"                 yaml:"type"`
	ID         string     `json:"id"                   yaml:"id"`
	ClientName string     `json:"clientName,omitempty" yaml:"clientName,omitempty"`
}

// MemberType implements Member.
func (m *ClientMember) MemberType() MemberType { return MemberTypeClient }

// MemberID implements Member.
func (m *ClientMember) MemberID() string { return m.ID }

var memberUnion = model.Union[Member]{
	Discriminator: "type",
	Variants: map[string]func() Member{
		string(MemberTypeUser):   func() Member { return &UserMember{} },
		string(MemberTypeClient): func() Member { return &ClientMember{} },
	},
}

// MemberList is one page of group members.
type MemberList struct {
	Items []Member `json:"items"           yaml:"items"`
	Count int      `json:"count,omitempty" yaml:"count,omitempty"`
}

// UnmarshalJSON decodes each member into its concrete type.
func (l *MemberList) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items json.RawMessage `json:"items"`
		Count int             `json:"count"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding member list: %w", err)
	}

	l.Count = raw.Count
	l.Items = nil

	if len(raw.Items) == 0 || string(raw.Items) == "null" {
		return nil
	}

	items, err := memberUnion.DecodeList(raw.Items)
	if err != nil {
		return err
	}

	l.Items = items

	return nil
}

// IAMDSError is the documented error payload of IAMDS.
type IAMDSError struct {
	Code    string             `json:"code,omitempty"    yaml:"code,omitempty"`
	Message string             `json:"message,omitempty" yaml:"message,omitempty"`
	Target  string             `json:"target,omitempty"  yaml:"target,omitempty"`
	Details []IAMDSErrorDetail `json:"details,omitempty" yaml:"details,omitempty"`
}

// IAMDSErrorDetail is one entry of IAMDSError.Details.
type IAMDSErrorDetail struct {
	Code    string `json:"code,omitempty"    yaml:"code,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Target  string `json:"target,omitempty"  yaml:"target,omitempty"`
}
