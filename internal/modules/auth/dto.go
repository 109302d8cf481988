package auth

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexInt decodes a JSON number or a numeric string, as sent by HTML
// form posts.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*n = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

type RegisterParentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"required,phone"`
}

type RegisterDaycareRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6,max=72"`
	Phone          string  `json:"phone" validate:"required,phone"`
	Address        string  `json:"address" validate:"required"`
	City           string  `json:"city" validate:"required"`
	State          string  `json:"state" validate:"required"`
	ZipCode        string  `json:"zipCode" validate:"required"`
	Capacity       FlexInt `json:"capacity" validate:"required,min=1"`
	Description    string  `json:"description" validate:"required"`
	OperatingHours string  `json:"operatingHours" validate:"required"`
	AgeRange       string  `json:"ageRange" validate:"required"`
	LicensingInfo  string  `json:"licensingInfo" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Type     string `json:"type"`
}

// UserPublic is the session account as returned by login and check.
type UserPublic struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

type LoginResult struct {
	User  UserPublic
	Token string
}
