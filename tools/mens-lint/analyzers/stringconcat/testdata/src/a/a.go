package a

func joinIDs(ids []string) string {
	var result string
	for _, id := range ids {
		result += id + "\n" // want "string concatenation in loop - use strings.Builder"
	}
	return result
}

func joinContents(contents []string) string {
	merged := ""
	for _, c := range contents {
		merged = merged + c + "\n" // want "string concatenation in loop - use strings.Builder"
	}
	return merged
}

func countNotes(ids []string) int {
	var count int
	for range ids {
		count += 1
	}
	return count
}

func lastID(ids []string) string {
	var last string
	for _, id := range ids {
		last = "note-" + id
	}
	return last
}

func separator(local, remote string) string {
	return local + "\n" + remote
}
