package normalizers

import (
	"github.com/Ramsey-B/clover/pkg/models"
)

// rawCellChain is the registry chain applied to every raw roster cell
// before vocabulary lookups.
var rawCellChain = []string{"trim", "collapse_whitespace"}

func cleanCell(value string) string {
	return ApplyChain(value, rawCellChain...)
}

// NormalizeDataset applies the roster vocabulary to every record in the
// snapshot and returns a new one. Raw cells are trimmed first; the raw
// Position string is kept alongside the derived Positions list so the
// loader can log unmapped values.
func NormalizeDataset(vocab *Vocab, dataset models.Dataset) models.Dataset {
	out := dataset.Clone()
	for i := range out.Players {
		p := &out.Players[i]
		p.School = cleanCell(p.School)
		p.Name = cleanCell(p.Name)
		p.Positions = vocab.Positions(p.Position)
		if !models.IsMissing(p.Batting) {
			p.Batting = vocab.Hand(p.Batting)
		}
		if !models.IsMissing(p.Throwing) {
			p.Throwing = vocab.Hand(p.Throwing)
		}
		if !models.IsMissing(p.ClassYear) {
			p.ClassYear = vocab.ClassYear(p.ClassYear)
		}
		if !models.IsMissing(p.Hometown) {
			p.Hometown = vocab.Hometown(cleanCell(p.Hometown))
		}
		if !models.IsMissing(p.HighSchool) {
			p.HighSchool = cleanCell(p.HighSchool)
		}
		if !models.IsMissing(p.LastSchool) {
			p.LastSchool = cleanCell(p.LastSchool)
		}
	}
	for i := range out.Coaches {
		c := &out.Coaches[i]
		c.School = cleanCell(c.School)
		c.Name = cleanCell(c.Name)
		c.Title = cleanCell(c.Title)
	}
	return out
}
