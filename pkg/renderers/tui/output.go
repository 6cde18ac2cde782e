package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
)

func (r *Renderer) serialize(record form.Record) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		values.Set("username", record.Username)
		values.Set("fullName", record.FullName)
		values.Set("email", record.Email)
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		fmt.Fprintf(&b, "username=%s\n", record.Username)
		fmt.Fprintf(&b, "fullName=%s\n", record.FullName)
		fmt.Fprintf(&b, "email=%s\n", record.Email)
		return []byte(b.String()), nil
	default:
		return json.Marshal(record)
	}
}
