package domain

import (
	"fmt"
	"strings"
)

// CaseType tags a legal question with the category the backend answers it under.
type CaseType string

const (
	CaseTypeGeneral  CaseType = "general"
	CaseTypeFamily   CaseType = "family"
	CaseTypeProperty CaseType = "property"
	CaseTypeCriminal CaseType = "criminal"
	CaseTypeBusiness CaseType = "business"
)

// DefaultCaseType is used until the user picks another category.
const DefaultCaseType = CaseTypeGeneral

// CaseTypes lists every case type in display order.
var CaseTypes = []CaseType{
	CaseTypeGeneral,
	CaseTypeFamily,
	CaseTypeProperty,
	CaseTypeCriminal,
	CaseTypeBusiness,
}

// CaseTypeLabels maps each case type to the label shown in the app.
var CaseTypeLabels = map[CaseType]string{
	CaseTypeGeneral:  "সাধারণ",
	CaseTypeFamily:   "পারিবারিক",
	CaseTypeProperty: "সম্পত্তি",
	CaseTypeCriminal: "ফৌজদারি",
	CaseTypeBusiness: "ব্যবসা",
}

// Valid reports whether c is one of the fixed case types.
func (c CaseType) Valid() bool {
	_, ok := CaseTypeLabels[c]
	return ok
}

// Label returns the display label, falling back to the general label.
func (c CaseType) Label() string {
	if l, ok := CaseTypeLabels[c]; ok {
		return l
	}
	return CaseTypeLabels[CaseTypeGeneral]
}

// ParseCaseType parses a case type name. An empty string yields the default.
func ParseCaseType(s string) (CaseType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultCaseType, nil
	}
	c := CaseType(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCaseType, s)
	}
	return c, nil
}

// ErrorKind classifies why a flow ended in the failed state.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindHTTPStatus ErrorKind = "http_status"
	ErrorKindTransport  ErrorKind = "transport"
	ErrorKindParse      ErrorKind = "parse"
	ErrorKindSource     ErrorKind = "source"
)
