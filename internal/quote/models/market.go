package models

import (
	"time"
	_ "time/tzdata"
)

// Market is a national market the underwriter quotes for.
type Market string

const (
	MarketSweden  Market = "SWEDEN"
	MarketNorway  Market = "NORWAY"
	MarketDenmark Market = "DENMARK"
)

// Currency returns the ISO 4217 currency quotes in this market are priced in.
func (m Market) Currency() string {
	switch m {
	case MarketNorway:
		return "NOK"
	case MarketDenmark:
		return "DKK"
	default:
		return "SEK"
	}
}

// Location is the market's time zone; ages and dates are evaluated in it.
func (m Market) Location() *time.Location {
	name := "Europe/Stockholm"
	switch m {
	case MarketNorway:
		name = "Europe/Oslo"
	case MarketDenmark:
		name = "Europe/Copenhagen"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ProductType is the product line of a quote.
type ProductType string

const (
	ProductApartment   ProductType = "APARTMENT"
	ProductHouse       ProductType = "HOUSE"
	ProductHomeContent ProductType = "HOME_CONTENT"
	ProductTravel      ProductType = "TRAVEL"
	ProductAccident    ProductType = "ACCIDENT"
)

// DataKind identifies one (market, product) payload variant.
type DataKind string

const (
	KindSwedishApartment      DataKind = "SWEDISH_APARTMENT"
	KindSwedishHouse          DataKind = "SWEDISH_HOUSE"
	KindNorwegianHomeContents DataKind = "NORWEGIAN_HOME_CONTENTS"
	KindNorwegianTravel       DataKind = "NORWEGIAN_TRAVEL"
	KindDanishHomeContents    DataKind = "DANISH_HOME_CONTENTS"
	KindDanishAccident        DataKind = "DANISH_ACCIDENT"
	KindDanishTravel          DataKind = "DANISH_TRAVEL"
)

// Kinds lists every payload variant.
var Kinds = []DataKind{
	KindSwedishApartment,
	KindSwedishHouse,
	KindNorwegianHomeContents,
	KindNorwegianTravel,
	KindDanishHomeContents,
	KindDanishAccident,
	KindDanishTravel,
}

func (k DataKind) Market() Market {
	switch k {
	case KindSwedishApartment, KindSwedishHouse:
		return MarketSweden
	case KindNorwegianHomeContents, KindNorwegianTravel:
		return MarketNorway
	case KindDanishHomeContents, KindDanishAccident, KindDanishTravel:
		return MarketDenmark
	}
	return ""
}

func (k DataKind) Product() ProductType {
	switch k {
	case KindSwedishApartment:
		return ProductApartment
	case KindSwedishHouse:
		return ProductHouse
	case KindNorwegianHomeContents, KindDanishHomeContents:
		return ProductHomeContent
	case KindNorwegianTravel, KindDanishTravel:
		return ProductTravel
	case KindDanishAccident:
		return ProductAccident
	}
	return ""
}

func (k DataKind) Valid() bool {
	return k.Market() != ""
}

// State is the persisted lifecycle state of a quote. StateExpired is never
// persisted; it is derived on read from the validity window.
type State string

const (
	StateIncomplete State = "INCOMPLETE"
	StateQuoted     State = "QUOTED"
	StateSigned     State = "SIGNED"
	StateExpired    State = "EXPIRED"
	StateFailed     State = "FAILED"
)

// Partner is who a quote is attributed to.
type Partner string

const PartnerDirect Partner = "DIRECT"

// Channel is where a quote was initiated from.
type Channel string

const (
	ChannelWeb         Channel = "WEB"
	ChannelApp         Channel = "APP"
	ChannelPartnership Channel = "PARTNERSHIP"
	ChannelOperator    Channel = "OPERATOR"
)
