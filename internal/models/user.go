// Package models defines the records the directory client keeps in memory and
// persists locally: users fetched from the remote API, favorites and per-page
// cache metadata.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingLoginUUID is returned when a remote record cannot be given an id.
var ErrMissingLoginUUID = errors.New("user record has no login uuid")

// User is a single directory entry. ID is assigned locally from Login.UUID;
// the remote id object is dropped when a page is decoded.
type User struct {
	ID         string   `json:"id"`
	Gender     string   `json:"gender"`
	Name       Name     `json:"name"`
	Location   Location `json:"location"`
	Email      string   `json:"email"`
	Login      Login    `json:"login"`
	DOB        DatedAge `json:"dob"`
	Registered DatedAge `json:"registered"`
	Phone      string   `json:"phone"`
	Cell       string   `json:"cell"`
	Picture    Picture  `json:"picture"`
	Nat        string   `json:"nat"`
}

type Name struct {
	Title string `json:"title"`
	First string `json:"first"`
	Last  string `json:"last"`
}

// FullName joins first and last name with a single space.
func (n Name) FullName() string {
	return n.First + " " + n.Last
}

type Location struct {
	Street      Street      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Postcode    Postcode    `json:"postcode"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    Timezone    `json:"timezone"`
}

type Street struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Timezone struct {
	Offset      string `json:"offset"`
	Description string `json:"description"`
}

// Login mirrors the remote login block. UUID is the only field the client relies on.
type Login struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Salt     string `json:"salt,omitempty"`
	MD5      string `json:"md5,omitempty"`
	SHA1     string `json:"sha1,omitempty"`
	SHA256   string `json:"sha256,omitempty"`
}

// DatedAge is used for both date of birth and registration.
type DatedAge struct {
	Date string `json:"date"`
	Age  int    `json:"age"`
}

type Picture struct {
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// Postcode is sent by the API either as a JSON string or a JSON number
// depending on the nationality. It is always kept as text.
type Postcode string

func (p *Postcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("postcode: %w", err)
		}
		*p = Postcode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("postcode: %w", err)
	}
	*p = Postcode(n.String())
	return nil
}

func (p Postcode) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(p))), nil
}

// FromRemote assigns ids to freshly decoded remote records. The returned slice
// is a copy; the input is left untouched.
func FromRemote(raw []User) ([]User, error) {
	out := make([]User, 0, len(raw))
	for i, u := range raw {
		if u.Login.UUID == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingLoginUUID)
		}
		u.ID = u.Login.UUID
		out = append(out, u)
	}
	return out, nil
}
