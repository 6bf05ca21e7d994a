package common

// Unique returns the elements of s in first-occurrence order without duplicates.
func Unique[S ~[]E, E comparable](s S) S {
	if len(s) == 0 {
		return s
	}

	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// AppendUnique appends v to s unless it is already present.
func AppendUnique[S ~[]E, E comparable](s S, v E) S {
	for _, e := range s {
		if e == v {
			return s
		}
	}

	return append(s, v)
}
