package randomuser

import (
	"encoding/json"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// Response is the body of GET /?page=N&results=M.
type Response struct {
	Results []models.User `json:"results"`
	Info    Info          `json:"info"`
}

// Info carries the listing metadata. Results is the number of records the API
// says it returned for the page.
type Info struct {
	Seed    string `json:"seed"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version"`
}

// record is one result as sent on the wire. The API's own "id" is a
// {name, value} object (a national identifier) and is discarded; local ids
// come from login.uuid.
type record struct {
	models.User
	NationalID json.RawMessage `json:"id"`
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var wire struct {
		Results []record `json:"results"`
		Info    Info     `json:"info"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Results = make([]models.User, len(wire.Results))
	for i, rec := range wire.Results {
		r.Results[i] = rec.User
	}
	r.Info = wire.Info
	return nil
}
