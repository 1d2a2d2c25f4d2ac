package domain

import "time"

// VehicleIdentifierKind тип идентификатора автомобиля в запросе на запись
type VehicleIdentifierKind string

const (
	VehicleIdentifierPlate   VehicleIdentifierKind = "PLATE"
	VehicleIdentifierChassis VehicleIdentifierKind = "CHASSIS"
)

func (k VehicleIdentifierKind) IsValid() bool {
	return k == VehicleIdentifierPlate || k == VehicleIdentifierChassis
}

// Vehicle represents a customer vehicle
type Vehicle struct {
	ID            int64
	VehicleNumber *string // Госномер, может отсутствовать у новой машины
	ChassisNo     *string // Номер шасси, может отсутствовать при создании по госномеру
	Make          string
	Model         string
	Year          int
	OwnerID       *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VehicleDetails данные для создания автомобиля, если он не найден
type VehicleDetails struct {
	Make  string
	Model string
	Year  int
}

// VehicleIdentifier явный идентификатор автомобиля: тип и значение
type VehicleIdentifier struct {
	Kind  VehicleIdentifierKind
	Value string
}
