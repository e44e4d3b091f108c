package model

// Cart is the persisted multiset of product ids. Duplicates encode
// quantity: the number of occurrences of an id is the quantity of that
// product. Order carries no meaning beyond insertion order.
type Cart []ProductID

// Len returns the total number of units in the cart, which is also the
// value shown on the count badge.
func (c Cart) Len() int {
	return len(c)
}

// IsEmpty reports whether the cart holds no units.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Count returns the quantity of the given product.
func (c Cart) Count(id ProductID) int {
	count := 0
	for _, item := range c {
		if item == id {
			count++
		}
	}
	return count
}

// Contains reports whether at least one unit of the product is present.
func (c Cart) Contains(id ProductID) bool {
	return c.Count(id) > 0
}

// Distinct returns the distinct product ids in first-occurrence order.
func (c Cart) Distinct() []ProductID {
	seen := make(map[ProductID]struct{}, len(c))
	var distinct []ProductID
	for _, id := range c {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}

// Append returns a new cart with one more occurrence of the product.
func (c Cart) Append(id ProductID) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, id)
}

// RemoveAll returns a new cart with every occurrence of the product removed.
func (c Cart) RemoveAll(id ProductID) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}

// RemoveOne returns a new cart with the first occurrence of the product
// removed. The cart is returned unchanged when the product is absent.
func (c Cart) RemoveOne(id ProductID) Cart {
	out := make(Cart, 0, len(c))
	removed := false
	for _, item := range c {
		if !removed && item == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out
}
