package dto

import (
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// LogoDateLayout is the date format the ERP's REST API accepts
const LogoDateLayout = "2006-01-02T15:04:05"

// LogoDemandFiche is the wire form of a demand fiche
type LogoDemandFiche struct {
	FicheNo      string           `json:"FICHENO"`
	Number       string           `json:"NUMBER"`
	Date         string           `json:"DATE"`
	Time         int64            `json:"TIME"`
	Status       int              `json:"STATUS"`
	XMLAttribute int              `json:"XML_ATTRIBUTE"`
	DemandType   int              `json:"DEMAND_TYPE"`
	DemandType2  int              `json:"DEMANDTYPE"`
	UserNo       int              `json:"USER_NO"`
	UserNo2      int              `json:"USERNO"`
	MPSCode      string           `json:"MPS_CODE"`
	LineCount    int              `json:"LINE_CNT"`
	Transactions LogoTransactions `json:"TRANSACTIONS"`
}

// LogoTransactions wraps the line list the way the ERP expects
type LogoTransactions struct {
	Items []LogoTransaction `json:"items"`
}

// LogoTransaction is the wire form of a transaction line
type LogoTransaction struct {
	ItemRef      int64   `json:"ITEMREF"`
	LineNo       int     `json:"LINE_NO"`
	Status       int     `json:"STATUS"`
	MRPHeadType  int     `json:"MRP_HEAD_TYPE"`
	POrderType   int     `json:"PORDER_TYPE"`
	BOMType      int     `json:"BOM_TYPE"`
	XMLAttribute int     `json:"XML_ATTRIBUTE"`
	Amount       float64 `json:"AMOUNT"`
	UnitCode     string  `json:"UNIT_CODE"`
	SourceIndex  int     `json:"SOURCE_INDEX"`
	MeetType     int     `json:"MEET_TYPE"`
	BOMMasterRef int64   `json:"BOMMASTERREF"`
	BOMRevRef    int64   `json:"BOMREVREF"`
	ClientRef    int64   `json:"CLIENTREF"`
}

// NewLogoDemandFiche maps a demand document onto its wire form.
// LINE_CNT is always the length of the line list.
func NewLogoDemandFiche(doc *entities.DemandDocument) LogoDemandFiche {
	items := make([]LogoTransaction, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		items = append(items, LogoTransaction{
			ItemRef:      int64(line.ItemRef),
			LineNo:       line.LineNo,
			Status:       entities.DemandStatusActive,
			MRPHeadType:  entities.MRPHeadTypeDemand,
			POrderType:   entities.POrderTypeNone,
			BOMType:      entities.BOMTypeNone,
			XMLAttribute: entities.XMLAttributeNew,
			Amount:       line.Amount.InexactFloat64(),
			UnitCode:     line.UnitCode,
			SourceIndex:  line.SourceIndex,
			MeetType:     int(line.MeetType),
			BOMMasterRef: int64(line.BOMMasterRef),
			BOMRevRef:    int64(line.BOMRevRef),
			ClientRef:    int64(line.ClientRef),
		})
	}

	return LogoDemandFiche{
		FicheNo:      doc.FicheNo,
		Number:       doc.FicheNo,
		Date:         doc.Date.Format(LogoDateLayout),
		Time:         doc.Time,
		Status:       entities.DemandStatusActive,
		XMLAttribute: entities.XMLAttributeNew,
		DemandType:   entities.DemandTypeNormal,
		DemandType2:  entities.DemandTypeNormal,
		UserNo:       doc.UserNo,
		UserNo2:      doc.UserNo,
		MPSCode:      entities.MPSCodeMRP,
		LineCount:    len(items),
		Transactions: LogoTransactions{Items: items},
	}
}
