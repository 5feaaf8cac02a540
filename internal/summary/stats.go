package summary

// Statistics aggregates the version sequence. Ties for shortest/longest
// resolve to the first version encountered in sequence order.
type Statistics struct {
	Count            int     `json:"count"`
	AverageWordCount float64 `json:"averageWordCount"`
	Shortest         Version `json:"shortestVersion"`
	Longest          Version `json:"longestVersion"`
}

// Stats computes aggregate statistics over versions. Returns the zero value
// when the sequence is empty.
func Stats(versions []Version) Statistics {
	if len(versions) == 0 {
		return Statistics{}
	}
	st := Statistics{
		Count:    len(versions),
		Shortest: versions[0],
		Longest:  versions[0],
	}
	total := 0
	shortWC := versions[0].WordCount()
	longWC := shortWC
	for i, v := range versions {
		wc := v.WordCount()
		total += wc
		if i == 0 {
			continue
		}
		if wc < shortWC {
			shortWC, st.Shortest = wc, v
		}
		if wc > longWC {
			longWC, st.Longest = wc, v
		}
	}
	st.AverageWordCount = float64(total) / float64(len(versions))
	return st
}

// Delta describes how a second version differs from a first.
type Delta struct {
	WordDelta     int     `json:"wordDelta"`
	CharDelta     int     `json:"charDelta"`
	PercentChange float64 `json:"percentChange"`
}

// Compare measures v2 against v1. PercentChange is relative to v1's word
// count and defined as 0 when v1 has no words.
func Compare(v1, v2 Version) Delta {
	w1, w2 := v1.WordCount(), v2.WordCount()
	d := Delta{
		WordDelta: w2 - w1,
		CharDelta: len(v2.Content) - len(v1.Content),
	}
	if w1 != 0 {
		d.PercentChange = float64(d.WordDelta) / float64(w1) * 100
	}
	return d
}
