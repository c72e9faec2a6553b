package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a shipping address
// It is immutable - all operations return new Address instances
type Address struct {
	street     string
	city       string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithCountry sets the country for the address
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address.
// Street, city and postal code are all required before an order can ship.
func NewAddress(street, city, postalCode string, opts ...AddressOption) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	postalCode = strings.TrimSpace(postalCode)

	if err := validateStreet(street); err != nil {
		return Address{}, err
	}
	if err := validateAddressCity(city); err != nil {
		return Address{}, err
	}
	if err := validatePostalCode(postalCode); err != nil {
		return Address{}, err
	}

	addr := Address{
		street:     street,
		city:       city,
		postalCode: postalCode,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.country) > 100 {
		return Address{}, fmt.Errorf("country cannot exceed 100 characters")
	}

	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, city, postalCode string, opts ...AddressOption) Address {
	addr, err := NewAddress(street, city, postalCode, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Street returns the street line
func (a Address) Street() string {
	return a.street
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country
func (a Address) Country() string {
	return a.country
}

// IsEmpty returns true if the address is empty (all fields are blank)
func (a Address) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.postalCode == ""
}

// IsComplete returns true if street, city and postal code are all present
func (a Address) IsComplete() bool {
	return a.street != "" && a.city != "" && a.postalCode != ""
}

// FormatLine returns the single-line form used on order records.
// Format: "street, city, postalCode"
func (a Address) FormatLine() string {
	if a.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s", a.street, a.city, a.postalCode)
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FormatLine()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:     a.street,
		City:       a.city,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Delegates to NewAddress so validation rules apply consistently.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	// Allow empty addresses from JSON
	if v.Street == "" && v.City == "" && v.PostalCode == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.Street, v.City, v.PostalCode, WithCountry(v.Country))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}

// Validation functions

func validateStreet(street string) error {
	if street == "" {
		return fmt.Errorf("street cannot be empty")
	}
	if len(street) > 500 {
		return fmt.Errorf("street cannot exceed 500 characters")
	}
	return nil
}

func validateAddressCity(city string) error {
	if city == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return fmt.Errorf("city cannot exceed 100 characters")
	}
	return nil
}

func validatePostalCode(postalCode string) error {
	if postalCode == "" {
		return fmt.Errorf("postal code cannot be empty")
	}
	if len(postalCode) > 20 {
		return fmt.Errorf("postal code cannot exceed 20 characters")
	}
	return nil
}
