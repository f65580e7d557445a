// Package stopping decides when an autoregressive decoding loop must
// terminate. Criteria are pure predicates over the caller-owned token
// history and decoded text; they hold no state between calls.
package stopping

// Criterion reports whether decoding must stop given the tokens generated
// so far and the text decoded from them.
type Criterion interface {
	ShouldStop(history []int, text string) bool
}

// Criteria is an OR-combination: it stops as soon as any member stops.
// Zero members never stop.
type Criteria struct {
	crit []Criterion
}

func NewCriteria(crit ...Criterion) *Criteria {
	return &Criteria{crit: crit}
}

// Add appends crit to the set.
func (c *Criteria) Add(crit Criterion) {
	c.crit = append(c.crit, crit)
}

// Len reports the number of registered criteria.
func (c *Criteria) Len() int {
	return len(c.crit)
}

func (c *Criteria) ShouldStop(history []int, text string) bool {
	for _, crit := range c.crit {
		if crit.ShouldStop(history, text) {
			return true
		}
	}
	return false
}
