package recipe

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

const systemOwner = "system"

// Owner identifies who created a recipe: either a user id or the sentinel
// "system" used for seed data. The sentinel never matches any user id, so
// system recipes are admin-only to mutate.
//
// On the wire an Owner is a JSON number for user-owned recipes and the
// string "system" for seeded ones, matching the SPA contract.
type Owner struct {
	userID int64
	system bool
}

// UserOwner returns an Owner for the given user id.
func UserOwner(id int64) Owner {
	return Owner{userID: id}
}

// SystemOwner returns the sentinel owner for seed data.
func SystemOwner() Owner {
	return Owner{system: true}
}

// UserID returns the owning user id and whether the owner is a user at all.
func (o Owner) UserID() (int64, bool) {
	return o.userID, !o.system
}

// IsSystem reports whether the owner is the system sentinel.
func (o Owner) IsSystem() bool {
	return o.system
}

func (o Owner) String() string {
	if o.system {
		return systemOwner
	}
	return strconv.FormatInt(o.userID, 10)
}

// ParseOwner converts the stored string form back into an Owner.
func ParseOwner(s string) (Owner, error) {
	if s == systemOwner {
		return SystemOwner(), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Owner{}, fmt.Errorf("invalid owner %q: %w", s, err)
	}
	return UserOwner(id), nil
}

// MarshalJSON encodes user owners as numbers and the sentinel as "system".
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.system {
		return json.Marshal(systemOwner)
	}
	return json.Marshal(o.userID)
}

// UnmarshalJSON accepts either a JSON number or the string "system".
func (o *Owner) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*o = UserOwner(id)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid owner value %s", data)
	}
	parsed, err := ParseOwner(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Value implements driver.Valuer so Owner can be stored in a text column.
func (o Owner) Value() (driver.Value, error) {
	return o.String(), nil
}

// Scan implements sql.Scanner.
func (o *Owner) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseOwner(v)
		if err != nil {
			return err
		}
		*o = parsed
		return nil
	case []byte:
		return o.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Owner", src)
	}
}
