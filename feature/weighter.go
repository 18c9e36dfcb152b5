// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package feature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// fallbackChars bounds the raw-text excerpt used when no known field is found.
const fallbackChars = 500

// Repetition weights by decision relevance. Payment behavior and derived
// debt ratios are critical, income and employment high, assets and family
// medium, demographics low.
const (
	weightLow      = 1
	weightMedium   = 2
	weightAsset    = 3
	weightPrevious = 4
	weightHigh     = 5
	weightProlong  = 6
	weightOverdue  = 7
	weightApproval = 8
	weightCritical = 10
	weightMaxRisk  = 12
	weightDTI      = 15
)

var (
	reAge           = regexp.MustCompile(`(?i)Age:\s*(\d+)\s*years?`)
	reGender        = regexp.MustCompile(`(?i)Gender:\s*([MF])`)
	reEducation     = regexp.MustCompile(`(?i)Education Level:\s*([^\n]+)`)
	reFamily        = regexp.MustCompile(`(?i)Family Status:\s*([^\n]+)`)
	reChildren      = regexp.MustCompile(`(?i)Number of Children:\s*(\d+)`)
	reHousehold     = regexp.MustCompile(`(?i)Household Size:\s*(\d+)`)
	reHousing       = regexp.MustCompile(`(?i)Housing Type:\s*([^\n]+)`)
	reRealty        = regexp.MustCompile(`(?i)Owns Real Estate:\s*(Yes|No)`)
	reCar           = regexp.MustCompile(`(?i)Owns a Car:\s*(Yes|No)`)
	reCarAge        = regexp.MustCompile(`(?i)age:\s*(\d+)\s*years?\)`)
	reIncomeType    = regexp.MustCompile(`(?i)Income Type:\s*([^\n]+)`)
	reOccupation    = regexp.MustCompile(`(?i)Occupation:\s*([^\n]+)`)
	reEmployment    = regexp.MustCompile(`(?i)Years Employed:\s*(\d+)`)
	reIncome        = regexp.MustCompile(`(?i)Annual Income:\s*\$?([\d,]+)`)
	reContract      = regexp.MustCompile(`(?i)Contract Type:\s*([^\n]+)`)
	reCredit        = regexp.MustCompile(`(?i)Requested Credit Amount[:\s]*\$?([\d,]+)`)
	reAnnuity       = regexp.MustCompile(`(?i)Monthly Annuity[:\s]*\$?([\d,]+)`)
	rePrevCredit    = regexp.MustCompile(`(?i)Average Previous Credit Amount[:\s]*\$?([\d,]+)`)
	reApproval      = regexp.MustCompile(`(?i)Approval Rate[:\s]*([\d.]+)%`)
	reActiveCredits = regexp.MustCompile(`(?i)Active External Credits[:\s]*(\d+)`)
	reExternal      = regexp.MustCompile(`(?i)Total External Credit Amount[:\s]*\$?([\d,]+)`)
	reDebt          = regexp.MustCompile(`(?i)Total Outstanding Debt[:\s]*\$?([\d,]+)`)
	reMaxOverdueAmt = regexp.MustCompile(`(?i)Historical Maximum Overdue Amount[:\s]*\$?([\d,]+)`)
	reDelay         = regexp.MustCompile(`(?i)Average Payment Delay[:\s]*(-?[\d.]+)\s*days`)
	reCompletion    = regexp.MustCompile(`(?i)Payment Completion Ratio[:\s]*([\d.]+)%`)
	reOverdueDays   = regexp.MustCompile(`(?i)Current Overdue Days[:\s]*(\d+)`)
	reMaxOverdue    = regexp.MustCompile(`(?i)Historical Maximum Overdue Days[:\s]*(\d+)`)
	reProlongations = regexp.MustCompile(`(?i)Total Credit Prolongations[:\s]*(\d+)`)
)

// Weighter builds weighted query text from client profile text.
// The zero value is not usable; call NewWeighter.
type Weighter struct{}

// NewWeighter creates a feature weighter.
func NewWeighter() *Weighter {
	return &Weighter{}
}

// WeightedText extracts known profile fields and returns them as a single
// space-joined phrase sequence, each phrase repeated by its weight. Field
// order and phrasing are fixed so identical input always produces identical
// output. When no field matches, the first 500 characters of the raw text
// are returned instead.
func (w *Weighter) WeightedText(text string) string {
	var features []string

	// Raw values retained for the derived ratio features.
	var (
		incomeValue   int
		incomeFound   bool
		debtValue     int
		debtFound     bool
		externalValue int
		externalFound bool
	)

	if m := reAge.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("age %s years", m[1]), weightLow)
	}
	if m := reGender.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("gender %s", m[1]), weightLow)
	}
	if m := reEducation.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("education %s", strings.TrimSpace(m[1])), weightLow)
	}
	if m := reFamily.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("family status %s", strings.TrimSpace(m[1])), weightMedium)
	}
	if m := reChildren.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("%s children", m[1]), weightAsset)
	}
	if m := reHousehold.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("household size %s", m[1]), weightMedium)
	}
	if m := reHousing.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("housing %s", strings.TrimSpace(m[1])), weightMedium)
	}
	if m := reRealty.FindStringSubmatch(text); m != nil {
		phrase := "no real estate"
		if strings.EqualFold(m[1], "yes") {
			phrase = "owns real estate"
		}
		features = appendN(features, phrase, weightAsset)
	}
	if m := reCar.FindStringSubmatch(text); m != nil {
		phrase := "no car"
		if strings.EqualFold(m[1], "yes") {
			phrase = "owns car"
		}
		features = appendN(features, phrase, weightAsset)
	}
	if m := reCarAge.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("car age %s years", m[1]), weightLow)
	}
	if m := reIncomeType.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("income type %s", strings.TrimSpace(m[1])), weightMedium)
	}
	if m := reOccupation.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("occupation %s", strings.TrimSpace(m[1])), weightAsset)
	}
	if m := reEmployment.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("employed %s years", m[1]), weightHigh)
	}
	if m := reIncome.FindStringSubmatch(text); m != nil {
		amount := stripCommas(m[1])
		if v, err := strconv.Atoi(amount); err == nil {
			incomeValue, incomeFound = v, true
		}
		features = appendN(features, fmt.Sprintf("income $%s", amount), weightHigh)
	}
	if m := reContract.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("contract %s", strings.TrimSpace(m[1])), weightMedium)
	}
	if m := reCredit.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("requesting $%s", stripCommas(m[1])), weightAsset)
	}
	if m := reAnnuity.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("monthly payment $%s", stripCommas(m[1])), weightAsset)
	}
	if m := rePrevCredit.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("previous credit $%s", stripCommas(m[1])), weightPrevious)
	}
	if m := reApproval.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			features = appendN(features, fmt.Sprintf("approval rate %s%%", decimal(v)), weightApproval)
		}
	}
	if m := reActiveCredits.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("%s active credits", m[1]), weightHigh)
	}
	if m := reExternal.FindStringSubmatch(text); m != nil {
		amount := stripCommas(m[1])
		if v, err := strconv.Atoi(amount); err == nil {
			externalValue, externalFound = v, true
		}
		features = appendN(features, fmt.Sprintf("external credit $%s", amount), weightHigh)
	}
	if m := reDebt.FindStringSubmatch(text); m != nil {
		amount := stripCommas(m[1])
		if v, err := strconv.Atoi(amount); err == nil {
			debtValue, debtFound = v, true
		}
		features = appendN(features, fmt.Sprintf("outstanding debt $%s", amount), weightCritical)
	}
	if m := reMaxOverdueAmt.FindStringSubmatch(text); m != nil {
		features = appendN(features, fmt.Sprintf("max overdue amount $%s", stripCommas(m[1])), weightOverdue)
	}
	if m := reDelay.FindStringSubmatch(text); m != nil {
		if delay, err := strconv.ParseFloat(m[1], 64); err == nil {
			switch {
			case delay < 0:
				features = appendN(features, fmt.Sprintf("early payments %s days", decimal(-delay)), weightCritical)
			case delay == 0:
				features = appendN(features, "on-time payments", weightCritical)
			default:
				features = appendN(features, fmt.Sprintf("late payments %s days", decimal(delay)), weightCritical)
			}
		}
	}
	if m := reCompletion.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			features = appendN(features, fmt.Sprintf("payment completion %s%%", decimal(v)), weightMaxRisk)
		}
	}
	if m := reOverdueDays.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			if days > 0 {
				features = appendN(features, fmt.Sprintf("currently overdue %d days", days), weightCritical)
			} else {
				features = appendN(features, "no current overdue", weightCritical)
			}
		}
	}
	if m := reMaxOverdue.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			if days > 0 {
				features = appendN(features, fmt.Sprintf("max overdue %d days", days), weightMaxRisk)
			} else {
				// A clean history is a weaker signal than a dirty one.
				features = appendN(features, "no historical overdue", weightApproval)
			}
		}
	}
	if m := reProlongations.FindStringSubmatch(text); m != nil {
		if count, err := strconv.Atoi(m[1]); err == nil {
			if count > 0 {
				features = appendN(features, fmt.Sprintf("%d prolongations", count), weightProlong)
			} else {
				features = appendN(features, "no prolongations", weightPrevious)
			}
		}
	}

	// Debt-to-income ratio, the strongest single predictor.
	if incomeFound && incomeValue > 0 && debtFound {
		dti := float64(debtValue) / float64(incomeValue) * 100
		var phrase string
		switch {
		case dti == 0:
			phrase = "debt-to-income 0% no debt"
		case dti < 20:
			phrase = fmt.Sprintf("debt-to-income %.1f%% low debt", dti)
		case dti < 40:
			phrase = fmt.Sprintf("debt-to-income %.1f%% moderate debt", dti)
		case dti < 60:
			phrase = fmt.Sprintf("debt-to-income %.1f%% high debt", dti)
		default:
			phrase = fmt.Sprintf("debt-to-income %.1f%% very high debt", dti)
		}
		features = appendN(features, phrase, weightDTI)
	}

	// Credit utilization against total external credit.
	if externalFound && externalValue > 0 && debtFound {
		utilization := float64(debtValue) / float64(externalValue) * 100
		var phrase string
		switch {
		case utilization == 0:
			phrase = "credit utilization 0% fully paid"
		case utilization < 30:
			phrase = fmt.Sprintf("credit utilization %.1f%% low", utilization)
		case utilization < 60:
			phrase = fmt.Sprintf("credit utilization %.1f%% moderate", utilization)
		default:
			phrase = fmt.Sprintf("credit utilization %.1f%% high", utilization)
		}
		features = appendN(features, phrase, weightMaxRisk)
	}

	if len(features) == 0 {
		return headRunes(text, fallbackChars)
	}
	return strings.Join(features, " ")
}

// Summary holds the structured form of the most-watched profile fields.
// Nil pointers mean the field was absent from the text.
type Summary struct {
	Age               *int
	Children          *int
	YearsEmployed     *int
	OutstandingDebt   *int
	PaymentCompletion *float64
	OwnsRealty        *bool
	OwnsCar           *bool
}

// Summarize extracts the structured field summary from profile text.
func (w *Weighter) Summarize(text string) Summary {
	var s Summary

	if m := reAge.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			s.Age = &v
		}
	}
	if m := reChildren.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			s.Children = &v
		}
	}
	if m := reEmployment.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			s.YearsEmployed = &v
		}
	}
	if m := reDebt.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(stripCommas(m[1])); err == nil {
			s.OutstandingDebt = &v
		}
	}
	if m := reCompletion.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			s.PaymentCompletion = &v
		}
	}
	if m := reRealty.FindStringSubmatch(text); m != nil {
		v := strings.EqualFold(m[1], "yes")
		s.OwnsRealty = &v
	}
	if m := reCar.FindStringSubmatch(text); m != nil {
		v := strings.EqualFold(m[1], "yes")
		s.OwnsCar = &v
	}

	return s
}

// String renders the populated fields as "key=value" pairs for log lines.
// An empty string means nothing was recognized.
func (s Summary) String() string {
	var parts []string
	if s.Age != nil {
		parts = append(parts, fmt.Sprintf("age=%d", *s.Age))
	}
	if s.Children != nil {
		parts = append(parts, fmt.Sprintf("children=%d", *s.Children))
	}
	if s.YearsEmployed != nil {
		parts = append(parts, fmt.Sprintf("years_employed=%d", *s.YearsEmployed))
	}
	if s.OutstandingDebt != nil {
		parts = append(parts, fmt.Sprintf("outstanding_debt=%d", *s.OutstandingDebt))
	}
	if s.PaymentCompletion != nil {
		parts = append(parts, fmt.Sprintf("payment_completion=%.1f%%", *s.PaymentCompletion))
	}
	if s.OwnsRealty != nil {
		parts = append(parts, fmt.Sprintf("owns_realty=%t", *s.OwnsRealty))
	}
	if s.OwnsCar != nil {
		parts = append(parts, fmt.Sprintf("owns_car=%t", *s.OwnsCar))
	}
	return strings.Join(parts, " ")
}

func appendN(features []string, phrase string, n int) []string {
	for i := 0; i < n; i++ {
		features = append(features, phrase)
	}
	return features
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// decimal formats a parsed number keeping at least one fractional digit,
// so "85" renders as "85.0" and "85.5" stays "85.5".
func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func headRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
