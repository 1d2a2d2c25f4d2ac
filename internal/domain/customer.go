package domain

import "time"

// CustomerIdentifierKind тип идентификатора клиента в запросе на запись
type CustomerIdentifierKind string

const (
	CustomerIdentifierPhone CustomerIdentifierKind = "PHONE"
	CustomerIdentifierNIC   CustomerIdentifierKind = "NIC"
)

func (k CustomerIdentifierKind) IsValid() bool {
	return k == CustomerIdentifierPhone || k == CustomerIdentifierNIC
}

// Customer represents a service center customer
type Customer struct {
	ID        int64
	Name      string
	Address   *string
	PhoneNo   *string
	NICNo     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerDetails данные для создания клиента, если он не найден
type CustomerDetails struct {
	Name    string
	Address *string
	PhoneNo *string
}

// CustomerIdentifier явный идентификатор клиента: тип и значение
type CustomerIdentifier struct {
	Kind  CustomerIdentifierKind
	Value string
}
