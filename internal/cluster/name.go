package cluster

// Name picks the most frequent token across members. Ties go to the token
// that appears first when walking members in order and each member's tokens
// left to right.
func Name(members []Record) string {
	counts := make(map[string]int)
	order := make([]string, 0, 8)
	for _, m := range members {
		for _, token := range m.Tokens {
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}
	if len(order) == 0 {
		return FallbackName
	}
	best := order[0]
	for _, token := range order[1:] {
		if counts[token] > counts[best] {
			best = token
		}
	}
	return best
}
