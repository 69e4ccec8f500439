// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package catalog

import (
	"strconv"
	"strings"
)

// minMovieFields is the minimum field count for a movie record: id and title.
// Anything shorter is malformed and skipped.
const minMovieFields = 2

// minRatingFields is the minimum field count for a rating record:
// userId, itemId, rating, timestamp.
const minRatingFields = 4

// ParseMovies parses the pipe-delimited movie source into Movie records.
//
// Lines are split on any line-ending style (LF, CRLF, bare CR). Blank lines
// are ignored without being counted as skips. A line is malformed when it
// has fewer than two fields or a non-numeric id; malformed lines are dropped
// and their 1-based line numbers recorded in the report.
//
// Field 0 is the id, field 1 the title (trimmed). The trailing fields after
// the title, capped at the last 18 fields of the line, are positional genre
// flags decoded against GenreVocabulary: the literal value "1" marks the
// genre at that position present, anything else (or a missing position)
// absent. Metadata fields between the title and the flag window are ignored.
func ParseMovies(text string) ([]Movie, Report) {
	lines := splitLines(text)
	movies := make([]Movie, 0, len(lines))
	var report Report

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < minMovieFields {
			report.SkippedLines = append(report.SkippedLines, i+1)
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			report.SkippedLines = append(report.SkippedLines, i+1)
			continue
		}

		movies = append(movies, Movie{
			ID:     id,
			Title:  strings.TrimSpace(fields[1]),
			Genres: decodeGenreFlags(fields),
		})
		report.Parsed++
	}

	return movies, report
}

// ParseRatings parses the tab-delimited ratings source into Rating records.
//
// Line splitting and skip reporting follow ParseMovies. A line is malformed
// when it has fewer than four tab-separated fields or any of the first four
// fields is non-numeric. Fields 0-3 map positionally to userId, itemId,
// rating, and timestamp; no range validation is applied.
func ParseRatings(text string) ([]Rating, Report) {
	lines := splitLines(text)
	ratings := make([]Rating, 0, len(lines))
	var report Report

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minRatingFields {
			report.SkippedLines = append(report.SkippedLines, i+1)
			continue
		}

		userID, err1 := strconv.Atoi(strings.TrimSpace(fields[0]))
		itemID, err2 := strconv.Atoi(strings.TrimSpace(fields[1]))
		value, err3 := strconv.Atoi(strings.TrimSpace(fields[2]))
		timestamp, err4 := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			report.SkippedLines = append(report.SkippedLines, i+1)
			continue
		}

		ratings = append(ratings, Rating{
			UserID:    userID,
			ItemID:    itemID,
			Value:     value,
			Timestamp: timestamp,
		})
		report.Parsed++
	}

	return ratings, report
}

// splitLines splits raw source text into lines regardless of line-ending
// style. CRLF and bare CR both normalize to LF before splitting, so line
// numbers stay consistent across producers.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// decodeGenreFlags extracts the genre set from a movie record's fields.
//
// The flag window is the trailing fields after id and title, capped at the
// last len(GenreVocabulary) fields of the line, so the window never overlaps
// the id or title columns on short lines. Window position i maps to
// GenreVocabulary[i]; positions past the end of a short window stay absent.
func decodeGenreFlags(fields []string) []string {
	start := len(fields) - len(GenreVocabulary)
	if start < minMovieFields {
		start = minMovieFields
	}

	flags := fields[start:]
	var genres []string
	for i, flag := range flags {
		if i >= len(GenreVocabulary) {
			break
		}
		if flag == "1" {
			genres = append(genres, GenreVocabulary[i])
		}
	}
	return genres
}
