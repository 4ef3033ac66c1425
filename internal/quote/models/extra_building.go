package models

import "github.com/google/uuid"

// ExtraBuildingType is the kind of outbuilding on a house property.
type ExtraBuildingType string

const (
	ExtraBuildingGarage     ExtraBuildingType = "GARAGE"
	ExtraBuildingCarport    ExtraBuildingType = "CARPORT"
	ExtraBuildingShed       ExtraBuildingType = "SHED"
	ExtraBuildingStorehouse ExtraBuildingType = "STOREHOUSE"
	ExtraBuildingFriggebod  ExtraBuildingType = "FRIGGEBOD"
	ExtraBuildingAttefall   ExtraBuildingType = "ATTEFALL"
	ExtraBuildingOuthouse   ExtraBuildingType = "OUTHOUSE"
	ExtraBuildingGuesthouse ExtraBuildingType = "GUESTHOUSE"
	ExtraBuildingGazebo     ExtraBuildingType = "GAZEBO"
	ExtraBuildingGreenhouse ExtraBuildingType = "GREENHOUSE"
	ExtraBuildingSauna      ExtraBuildingType = "SAUNA"
	ExtraBuildingBarn       ExtraBuildingType = "BARN"
	ExtraBuildingBoathouse  ExtraBuildingType = "BOATHOUSE"
	ExtraBuildingOther      ExtraBuildingType = "OTHER"
)

var extraBuildingDisplayNames = map[ExtraBuildingType]string{
	ExtraBuildingGarage:     "Garage",
	ExtraBuildingCarport:    "Carport",
	ExtraBuildingShed:       "Skjul",
	ExtraBuildingStorehouse: "Förråd",
	ExtraBuildingFriggebod:  "Friggebod",
	ExtraBuildingAttefall:   "Attefallshus",
	ExtraBuildingOuthouse:   "Uthus",
	ExtraBuildingGuesthouse: "Gästhus",
	ExtraBuildingGazebo:     "Lusthus",
	ExtraBuildingGreenhouse: "Växthus",
	ExtraBuildingSauna:      "Bastu",
	ExtraBuildingBarn:       "Lada",
	ExtraBuildingBoathouse:  "Båthus",
	ExtraBuildingOther:      "Övrigt",
}

// DisplayName is the default Swedish label for the building type.
func (t ExtraBuildingType) DisplayName() string {
	if name, ok := extraBuildingDisplayNames[t]; ok {
		return name
	}
	return extraBuildingDisplayNames[ExtraBuildingOther]
}

func (t ExtraBuildingType) Valid() bool {
	_, ok := extraBuildingDisplayNames[t]
	return ok
}

// ExtraBuilding is an outbuilding owned by a Swedish house payload.
type ExtraBuilding struct {
	ID                uuid.UUID         `json:"id"`
	Type              ExtraBuildingType `json:"type"`
	Area              int               `json:"area"`
	HasWaterConnected bool              `json:"hasWaterConnected"`
	DisplayName       string            `json:"displayName,omitempty"`
}

// NewExtraBuilding assigns an id and the default display name.
func NewExtraBuilding(t ExtraBuildingType, area int, hasWater bool) ExtraBuilding {
	return ExtraBuilding{
		ID:                uuid.New(),
		Type:              t,
		Area:              area,
		HasWaterConnected: hasWater,
		DisplayName:       t.DisplayName(),
	}
}

func cloneExtraBuildings(in []ExtraBuilding) []ExtraBuilding {
	if in == nil {
		return nil
	}
	out := make([]ExtraBuilding, len(in))
	copy(out, in)
	for i := range out {
		if out[i].ID == uuid.Nil {
			out[i].ID = uuid.New()
		}
		if out[i].DisplayName == "" {
			out[i].DisplayName = out[i].Type.DisplayName()
		}
	}
	return out
}
