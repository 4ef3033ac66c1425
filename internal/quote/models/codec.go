package models

import (
	"encoding/json"
	"fmt"
)

type dataEnvelope struct {
	Kind DataKind        `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalData encodes a payload together with its kind.
func MarshalData(d Data) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal %s data: %w", d.Kind(), err)
	}
	return json.Marshal(dataEnvelope{Kind: d.Kind(), Data: raw})
}

// UnmarshalData decodes a payload written by MarshalData.
func UnmarshalData(b []byte) (Data, error) {
	var env dataEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("unmarshal data envelope: %w", err)
	}
	return decodeKind(env.Kind, env.Data)
}

func decodeKind(kind DataKind, raw json.RawMessage) (Data, error) {
	var (
		d   Data
		err error
	)
	switch kind {
	case KindSwedishApartment:
		var v SwedishApartmentData
		err = json.Unmarshal(raw, &v)
		d = v
	case KindSwedishHouse:
		var v SwedishHouseData
		err = json.Unmarshal(raw, &v)
		d = v
	case KindNorwegianHomeContents:
		var v NorwegianHomeContentsData
		err = json.Unmarshal(raw, &v)
		d = v
	case KindNorwegianTravel:
		var v NorwegianTravelData
		err = json.Unmarshal(raw, &v)
		d = v
	case KindDanishHomeContents:
		var v DanishHomeContentsData
		err = json.Unmarshal(raw, &v)
		d = v
	case KindDanishAccident:
		var v DanishAccidentData
		err = json.Unmarshal(raw, &v)
		d = v
	case KindDanishTravel:
		var v DanishTravelData
		err = json.Unmarshal(raw, &v)
		d = v
	default:
		return nil, fmt.Errorf("unmarshal data: unknown kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s data: %w", kind, err)
	}
	return d, nil
}

// MarshalParked encodes the parked variants of a quote.
func MarshalParked(parked map[DataKind]Data) ([]byte, error) {
	out := make(map[DataKind]json.RawMessage, len(parked))
	for kind, d := range parked {
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshal parked %s data: %w", kind, err)
		}
		out[kind] = raw
	}
	return json.Marshal(out)
}

// UnmarshalParked decodes what MarshalParked wrote.
func UnmarshalParked(b []byte) (map[DataKind]Data, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var in map[DataKind]json.RawMessage
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("unmarshal parked data: %w", err)
	}
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[DataKind]Data, len(in))
	for kind, raw := range in {
		d, err := decodeKind(kind, raw)
		if err != nil {
			return nil, err
		}
		out[kind] = d
	}
	return out, nil
}
