package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// The checkout frontend posts multipart forms and JSON-encodes nested values,
// while other clients send plain JSON. The types below accept both shapes.
// UnmarshalParam makes them usable with echo's form binder.

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*f = FlexString(n.String())
	}
	return nil
}

func (f *FlexString) UnmarshalParam(param string) error {
	*f = FlexString(param)
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// Products is the "products" field: normally a comma-delimited string of
// names, sometimes a JSON array.
type Products struct {
	Names    string
	IsString bool // a delimited string was supplied
}

func (p *Products) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = Products{}

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		if err := json.Unmarshal(data, &p.Names); err != nil {
			return err
		}
		p.IsString = true
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("products must be a string or an array: %w", err)
	}

	names := make([]string, 0, len(items))
	for _, raw := range items {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			names = append(names, name)
			continue
		}
		var detail ProductDetail
		if err := json.Unmarshal(raw, &detail); err != nil {
			return fmt.Errorf("unsupported product entry %s", raw)
		}
		names = append(names, detail.Name)
	}
	p.Names = strings.Join(names, ",")
	return nil
}

func (p *Products) UnmarshalParam(param string) error {
	*p = Products{Names: param, IsString: true}
	return nil
}

type ProductDetails []ProductDetail

func (d *ProductDetails) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		return d.UnmarshalParam(encoded)
	}
	return json.Unmarshal(data, (*[]ProductDetail)(d))
}

func (d *ProductDetails) UnmarshalParam(param string) error {
	if strings.TrimSpace(param) == "" {
		*d = nil
		return nil
	}
	if err := json.Unmarshal([]byte(param), (*[]ProductDetail)(d)); err != nil {
		return fmt.Errorf("product_details must be a JSON array: %w", err)
	}
	return nil
}

// Names lists the product names in order, skipping blank ones.
func (d ProductDetails) Names() []string {
	names := make([]string, 0, len(d))
	for _, p := range d {
		if name := strings.TrimSpace(p.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// PaymentDetails carries wallet specific details such as paypalEmail.
type PaymentDetails map[string]any

func (p *PaymentDetails) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		return p.UnmarshalParam(encoded)
	}
	return json.Unmarshal(data, (*map[string]any)(p))
}

func (p *PaymentDetails) UnmarshalParam(param string) error {
	if strings.TrimSpace(param) == "" {
		*p = nil
		return nil
	}
	if err := json.Unmarshal([]byte(param), (*map[string]any)(p)); err != nil {
		return fmt.Errorf("paymentDetails must be a JSON object: %w", err)
	}
	return nil
}

func (p PaymentDetails) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
