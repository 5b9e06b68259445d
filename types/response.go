package types

// Responses serialise to a single JSON line. Field order matters only for
// readability on the wire; clients key on names.

// SimpleResponse is the uniform success/error envelope.
type SimpleResponse struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// TempReading reports the LM75 temperature.
type TempReading struct {
	Status     Status     `json:"status"`
	Sensor     SensorName `json:"sensor"`
	Celsius    float64    `json:"celsius"`
	Resolution string     `json:"resolution"` // "0.5" (9-bit LM75A)
	Address    string     `json:"address"`    // "0x48"
}

// LBAnalogReading reports the raw paper-level value.
type LBAnalogReading struct {
	Status Status     `json:"status"`
	Sensor SensorName `json:"sensor"`
	Mode   LBMode     `json:"mode"`
	Value  int        `json:"value"`
	Range  string     `json:"range"` // "0-1023"
}

// LBDigitalReading reports the thresholded paper-level value.
type LBDigitalReading struct {
	Status    Status     `json:"status"`
	Sensor    SensorName `json:"sensor"`
	Mode      LBMode     `json:"mode"`
	Value     int        `json:"value"` // 0 or 1
	Threshold int        `json:"threshold"`
	RawValue  int        `json:"raw_value"`
}

// BarrierReading reports the ticket-barrier state.
type BarrierReading struct {
	Status Status     `json:"status"`
	Sensor SensorName `json:"sensor"`
	Value  int        `json:"value"` // 0 or 1
}

// Success builds a success envelope.
func Success(message string) SimpleResponse {
	return SimpleResponse{Status: StatusSuccess, Message: message}
}

// Error builds an error envelope.
func Error(message string) SimpleResponse {
	return SimpleResponse{Status: StatusError, Message: message}
}
