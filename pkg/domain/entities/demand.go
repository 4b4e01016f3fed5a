package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed structural values of a demand fiche
const (
	DemandStatusActive = 1
	XMLAttributeNew    = 1
	DemandTypeNormal   = 0
	MRPHeadTypeDemand  = 2
	POrderTypeNone     = 0
	BOMTypeNone        = 0
	MPSCodeMRP         = "MRP"
)

// DemandHeader holds the header fields of a demand fiche
type DemandHeader struct {
	FicheNo string
	Date    time.Time
	// Time is the time of day encoded as HHmmss
	Time   int64
	UserNo int
}

// NewDemandHeader creates a header stamped with the given moment
func NewDemandHeader(ficheNo string, now time.Time, userNo int) DemandHeader {
	return DemandHeader{
		FicheNo: ficheNo,
		Date:    now,
		Time:    TimeOfDay(now),
		UserNo:  userNo,
	}
}

// TimeOfDay encodes the clock time of t as an HHmmss integer
func TimeOfDay(t time.Time) int64 {
	return int64(t.Hour()*10000 + t.Minute()*100 + t.Second())
}

// TransactionLine is one replenishment line of a demand fiche
type TransactionLine struct {
	ItemCode     ItemCode
	ItemRef      ItemRef
	LineNo       int
	Amount       decimal.Decimal
	UnitCode     string
	SourceIndex  int
	MeetType     MeetType
	BOMMasterRef BOMRef
	BOMRevRef    BOMRef
	ClientRef    ClientRef
}

// DemandDocument is the outbound demand fiche of one batch
type DemandDocument struct {
	DemandHeader
	LineCount int
	Lines     []TransactionLine
}
