package replenishment

import (
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// Assembly is the folded result of a batch
type Assembly struct {
	Document     *entities.DemandDocument
	UpdatedCount int
	Skipped      []entities.SkippedItem
}

// AssembleDocument folds item outcomes into a demand document. Lines are
// numbered from 1 in outcome order and LineCount equals len(Lines).
func AssembleDocument(header entities.DemandHeader, outcomes []entities.ItemOutcome) Assembly {
	doc := &entities.DemandDocument{
		DemandHeader: header,
		Lines:        make([]entities.TransactionLine, 0, len(outcomes)),
	}
	assembly := Assembly{
		Document: doc,
		Skipped:  []entities.SkippedItem{},
	}

	for _, outcome := range outcomes {
		switch outcome.Kind {
		case entities.OutcomeLine:
			draft := outcome.Line
			doc.Lines = append(doc.Lines, entities.TransactionLine{
				ItemCode:     outcome.ItemCode,
				ItemRef:      draft.ItemRef,
				LineNo:       len(doc.Lines) + 1,
				Amount:       draft.Amount,
				UnitCode:     draft.UnitCode,
				SourceIndex:  draft.SourceIndex,
				MeetType:     draft.MeetType,
				BOMMasterRef: draft.BOMMasterRef,
				BOMRevRef:    draft.BOMRevRef,
				ClientRef:    draft.ClientRef,
			})
			assembly.UpdatedCount++
		case entities.OutcomeSkipped:
			assembly.Skipped = append(assembly.Skipped, entities.SkippedItem{
				ItemCode: outcome.ItemCode,
				Reason:   outcome.Skip,
			})
		case entities.OutcomeNoLine:
		}
	}

	doc.LineCount = len(doc.Lines)
	return assembly
}
