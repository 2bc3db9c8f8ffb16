package remote

// WashType is a wash-type code from the remote booking system
type WashType string

const (
	WashExteriorTurismo     WashType = "LAVADO_EXTERIOR_TURISMO"
	WashInteriorTurismo     WashType = "LAVADO_INTERIOR_TURISMO"
	WashCompletoTurismo     WashType = "LAVADO_COMPLETO_TURISMO"
	WashPremiumTurismo      WashType = "LAVADO_PREMIUM_TURISMO"
	WashEnceradoTurismo     WashType = "ENCERADO_TURISMO"
	WashTapiceriaTurismo    WashType = "TAPICERIA_TURISMO"
	WashExteriorTodoterreno WashType = "LAVADO_EXTERIOR_TODOTERRENO"
	WashInteriorTodoterreno WashType = "LAVADO_INTERIOR_TODOTERRENO"
	WashCompletoTodoterreno WashType = "LAVADO_COMPLETO_TODOTERRENO"
	WashPremiumTodoterreno  WashType = "LAVADO_PREMIUM_TODOTERRENO"
	WashExteriorFurgoneta   WashType = "LAVADO_EXTERIOR_FURGONETA"
	WashInteriorFurgoneta   WashType = "LAVADO_INTERIOR_FURGONETA"
	WashCompletoFurgoneta   WashType = "LAVADO_COMPLETO_FURGONETA"
	WashPremiumFurgoneta    WashType = "LAVADO_PREMIUM_FURGONETA"
	WashExteriorMonovolumen WashType = "LAVADO_EXTERIOR_MONOVOLUMEN"
	WashCompletoMonovolumen WashType = "LAVADO_COMPLETO_MONOVOLUMEN"
	WashExteriorMoto        WashType = "LAVADO_EXTERIOR_MOTO"
	WashCompletoMoto        WashType = "LAVADO_COMPLETO_MOTO"
	WashExpress             WashType = "LAVADO_EXPRESS"
	WashLimpiezaFaros       WashType = "LIMPIEZA_FAROS"
	WashTratamientoOzono    WashType = "TRATAMIENTO_OZONO"
)

// washPrices maps every known wash-type code to its VAT-inclusive price.
// The online booking site quotes final prices, the base price is derived
// when the synthetic service is built.
var washPrices = map[WashType]float64{
	WashExteriorTurismo:     12.0,
	WashInteriorTurismo:     14.0,
	WashCompletoTurismo:     23.0,
	WashPremiumTurismo:      35.0,
	WashEnceradoTurismo:     30.0,
	WashTapiceriaTurismo:    45.0,
	WashExteriorTodoterreno: 15.0,
	WashInteriorTodoterreno: 17.0,
	WashCompletoTodoterreno: 28.0,
	WashPremiumTodoterreno:  40.0,
	WashExteriorFurgoneta:   18.0,
	WashInteriorFurgoneta:   20.0,
	WashCompletoFurgoneta:   32.0,
	WashPremiumFurgoneta:    45.0,
	WashExteriorMonovolumen: 14.0,
	WashCompletoMonovolumen: 26.0,
	WashExteriorMoto:        8.0,
	WashCompletoMoto:        15.0,
	WashExpress:             10.0,
	WashLimpiezaFaros:       20.0,
	WashTratamientoOzono:    25.0,
}

// AllWashTypes lists every known wash-type code
func AllWashTypes() []WashType {
	return []WashType{
		WashExteriorTurismo,
		WashInteriorTurismo,
		WashCompletoTurismo,
		WashPremiumTurismo,
		WashEnceradoTurismo,
		WashTapiceriaTurismo,
		WashExteriorTodoterreno,
		WashInteriorTodoterreno,
		WashCompletoTodoterreno,
		WashPremiumTodoterreno,
		WashExteriorFurgoneta,
		WashInteriorFurgoneta,
		WashCompletoFurgoneta,
		WashPremiumFurgoneta,
		WashExteriorMonovolumen,
		WashCompletoMonovolumen,
		WashExteriorMoto,
		WashCompletoMoto,
		WashExpress,
		WashLimpiezaFaros,
		WashTratamientoOzono,
	}
}

// PriceFor returns the VAT-inclusive price for a wash-type code.
// Unknown codes return (0, false) so callers can log the miss instead of
// silently billing zero.
func PriceFor(code WashType) (float64, bool) {
	price, ok := washPrices[code]
	return price, ok
}
