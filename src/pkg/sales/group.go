package sales

import "github.com/shopspring/decimal"

// Group is one salesperson's rows for the report date.
type Group struct {
	Salesperson string
	Records     []Record
}

/*
GroupBySalesperson partitions records by their exact salesperson value.

Groups come out in order of first appearance and keep their rows in input
order; every record lands in exactly one group.
*/
func GroupBySalesperson(records []Record) []Group {
	groups := make([]Group, 0)
	indexByName := make(map[string]int)

	for _, record := range records {
		index, exists := indexByName[record.Salesperson]
		if !exists {
			index = len(groups)
			indexByName[record.Salesperson] = index
			groups = append(groups, Group{Salesperson: record.Salesperson})
		}
		groups[index].Records = append(groups[index].Records, record)
	}

	return groups
}

// TotalSales sums the cleaned sales of every record in the group.
func (group Group) TotalSales() decimal.Decimal {
	total := decimal.Zero
	for _, record := range group.Records {
		total = total.Add(record.Sales)
	}
	return total
}

// UniqueClients counts distinct non-empty client identifiers in the group.
func (group Group) UniqueClients() int {
	seen := make(map[string]bool)
	for _, record := range group.Records {
		if record.Client == "" {
			continue
		}
		seen[record.Client] = true
	}
	return len(seen)
}
