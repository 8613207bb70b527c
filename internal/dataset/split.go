package dataset

import "github.com/abhisek/letterid/internal/letters"

// Split partitions records per class: the first half of each class (rounded
// down) goes to train, the rest to test. Both outputs are ordered by class,
// then by original position.
func Split(records []Record) (train, test []Record) {
	byLabel := make(map[letters.Label][]Record)
	for _, rec := range records {
		byLabel[rec.Label] = append(byLabel[rec.Label], rec)
	}
	for _, l := range letters.All() {
		group := byLabel[l]
		half := len(group) / 2
		train = append(train, group[:half]...)
		test = append(test, group[half:]...)
	}
	return train, test
}
