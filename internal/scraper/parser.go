package scraper

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Unit: гранулярность относительной даты
type Unit int

const (
	UnitMinute Unit = iota + 1
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

// Vocabulary сопоставляет словоформу единице времени
type Vocabulary map[string]Unit

var (
	// Украинские словоформы
	ukVocabulary = Vocabulary{
		"хвилина": UnitMinute,
		"хвилини": UnitMinute,
		"хвилину": UnitMinute,
		"хвилин":  UnitMinute,
		"година":  UnitHour,
		"години":  UnitHour,
		"годину":  UnitHour,
		"годин":   UnitHour,
		"день":    UnitDay,
		"дні":     UnitDay,
		"днів":    UnitDay,
		"тиждень": UnitWeek,
		"тижні":   UnitWeek,
		"тижнів":  UnitWeek,
		"місяць":  UnitMonth,
		"місяці":  UnitMonth,
		"місяців": UnitMonth,
		"рік":     UnitYear,
		"роки":    UnitYear,
		"років":   UnitYear,
	}

	// Русские словоформы
	ruVocabulary = Vocabulary{
		"минута":  UnitMinute,
		"минуту":  UnitMinute,
		"минуты":  UnitMinute,
		"минут":   UnitMinute,
		"час":     UnitHour,
		"часа":    UnitHour,
		"часов":   UnitHour,
		"день":    UnitDay,
		"дня":     UnitDay,
		"дней":    UnitDay,
		"неделя":  UnitWeek,
		"неделю":  UnitWeek,
		"недели":  UnitWeek,
		"недель":  UnitWeek,
		"месяц":   UnitMonth,
		"месяца":  UnitMonth,
		"месяцев": UnitMonth,
		"год":     UnitYear,
		"года":    UnitYear,
		"лет":     UnitYear,
	}

	enVocabulary = Vocabulary{
		"minute":  UnitMinute,
		"minutes": UnitMinute,
		"hour":    UnitHour,
		"hours":   UnitHour,
		"day":     UnitDay,
		"days":    UnitDay,
		"week":    UnitWeek,
		"weeks":   UnitWeek,
		"month":   UnitMonth,
		"months":  UnitMonth,
		"year":    UnitYear,
		"years":   UnitYear,
	}
)

// VocabularyFor возвращает встроенную таблицу для локали (uk, ru, en)
func VocabularyFor(locale string) (Vocabulary, error) {
	switch strings.ToLower(locale) {
	case "", "uk":
		return ukVocabulary, nil
	case "ru":
		return ruVocabulary, nil
	case "en":
		return enVocabulary, nil
	}
	return nil, fmt.Errorf("unsupported date locale: %s", locale)
}

// FormatError: строка не содержит ни одной известной единицы времени
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("could not parse relative date %q: invalid format", e.Input)
}

type DateParser struct {
	vocabulary Vocabulary
	re         *regexp.Regexp
}

func NewDateParser(vocabulary Vocabulary) *DateParser {
	words := make([]string, 0, len(vocabulary))
	for word := range vocabulary {
		words = append(words, word)
	}
	// Длинные формы первыми, иначе "дні" перехватит "днів"
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	for i, word := range words {
		words[i] = regexp.QuoteMeta(word)
	}

	return &DateParser{
		vocabulary: vocabulary,
		re:         regexp.MustCompile(`(?i)(\d*)\s*(` + strings.Join(words, "|") + `)`),
	}
}

// Parse переводит "3 дні" / "годину тому" в абсолютное время относительно ref
func (dp *DateParser) Parse(relativeDate string, ref time.Time) (time.Time, error) {
	relativeDate = strings.TrimSpace(relativeDate)

	matches := dp.re.FindStringSubmatch(relativeDate)
	if matches == nil {
		return time.Time{}, &FormatError{Input: relativeDate}
	}

	quantity := 1
	if matches[1] != "" {
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return time.Time{}, &FormatError{Input: relativeDate}
		}
		quantity = n
	}

	unit, ok := dp.vocabulary[strings.ToLower(matches[2])]
	if !ok {
		return time.Time{}, &FormatError{Input: relativeDate}
	}

	switch unit {
	case UnitMinute:
		return ref.Add(-time.Duration(quantity) * time.Minute), nil
	case UnitHour:
		return ref.Add(-time.Duration(quantity) * time.Hour), nil
	case UnitDay:
		return ref.AddDate(0, 0, -quantity), nil
	case UnitWeek:
		return ref.AddDate(0, 0, -7*quantity), nil
	case UnitMonth:
		return ref.AddDate(0, -quantity, 0), nil
	case UnitYear:
		return ref.AddDate(-quantity, 0, 0), nil
	}

	return time.Time{}, &FormatError{Input: relativeDate}
}
