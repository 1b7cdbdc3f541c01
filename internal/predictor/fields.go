package predictor

const (
	FieldTemperature = "Temperature"
	FieldRH          = "RH"
	FieldWS          = "WS"
	FieldRain        = "Rain"
	FieldFFMC        = "FFMC"
	FieldDMC         = "DMC"
	FieldISI         = "ISI"
	FieldClasses     = "Classes"
	FieldRegion      = "Region"
)

// FieldNames is the order the model artifacts were fitted on. Feature
// vectors are always built in this order.
var FieldNames = []string{
	FieldTemperature,
	FieldRH,
	FieldWS,
	FieldRain,
	FieldFFMC,
	FieldDMC,
	FieldISI,
	FieldClasses,
	FieldRegion,
}

// NumFeatures is the length of every feature vector.
var NumFeatures = len(FieldNames)
