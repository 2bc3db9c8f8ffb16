package remote

// BookingDTO is the appointment representation used by the remote online
// booking backend. The field names follow the remote JSON contract exactly.
type BookingDTO struct {
	ID             int64  `json:"id"`
	Fecha          string `json:"fecha"` // dd/MM/yyyy
	Hora           string `json:"hora"`  // HH:mm:ss
	Nombre         string `json:"nombre"`
	Telefono       string `json:"telefono"`
	Email          string `json:"email"`
	Estado         string `json:"estado"`
	TipoLavado     string `json:"tipoLavado"`
	ModeloVehiculo string `json:"modeloVehiculo"`
	Observaciones  string `json:"observaciones"`
	PagoAdelantado bool   `json:"pagoAdelantado"`
}

// BookingStatusUpdate is the payload for remote status changes
type BookingStatusUpdate struct {
	Estado string `json:"estado"`
}
