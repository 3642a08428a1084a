package dto

import "strconv"

type AuthPromptRequest struct {
	Mode string `json:"mode" validate:"omitempty,oneof=login register"`
}

// CredentialsRequest only bounds lengths; missing fields are reported by the
// workspace with its own message.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=72"` // bcrypt input limit
	Name     string `json:"name,omitempty" validate:"max=100"`
}

// FieldRequest carries a form field value. Numbers are accepted for
// char_limit and passed on in their decimal form.
type FieldRequest struct {
	Value any `json:"value"`
}

func (r FieldRequest) String() string {
	switch v := r.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

type FeatureRequest struct {
	Value string `json:"value" validate:"max=500"`
}
