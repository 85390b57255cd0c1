package service

import (
	"fmt"
	"math"

	"github.com/propfolio/mls-deal-analyzer/config"
	"github.com/propfolio/mls-deal-analyzer/dto"
	"github.com/propfolio/mls-deal-analyzer/utils"
)

// N/A reason strings. The UI keys off these exact substrings, so they
// are part of the API contract.
const (
	naCapRate        = "N/A (Purchase Price/NOI Missing/Zero)"
	naLoanAmount     = "N/A (Loan Amount Zero/Negative)"
	naLoanCalc       = "N/A (Loan Calculation Issue)"
	naLoanInputs     = "N/A (Loan Inputs Missing/Invalid)"
	naCFBT           = "N/A (NOI or Debt Service Missing)"
	naEquityZero     = "N/A (Initial Equity Zero/Negative)"
	naEquityInputs   = "N/A (CFBT or Equity Inputs Missing)"
	naGRM            = "N/A (Purchase Price or GPI Missing/Zero)"
	naAnnualDebtZero = "N/A (Annual Debt Service Zero/Negative)"
	naDSCR           = "N/A (NOI or Debt Service Missing/Zero)"
)

// CalculateProjections computes the ten investment metrics from the
// given field values, falling back to the effective defaults per field
// when a value is empty or unparseable. It is a pure function: no
// stored state, identical inputs always yield identical results.
//
// Every output is always set, either to a formatted value or to a
// reason-carrying "N/A" string. A panic anywhere in the pass resets all
// ten outputs and is reported as the single returned error; partial
// results are never exposed.
func CalculateProjections(inputs, defaults map[string]string) (results dto.CalculatedFinancials, err error) {
	results = dto.NewNAFinancials()

	defer func() {
		if r := recover(); r != nil {
			results = dto.NewNAFinancials()
			err = fmt.Errorf("projection pass failed: %v", r)
		}
	}()

	// --- Gross Potential Income ---
	// A scheduled income of zero means "not stated" (the shipped
	// default is "0"), so the units x rent path still applies then.
	var gpi float64
	gpiOK := false
	if gsi, ok := resolveField(inputs, defaults, "gross_scheduled_income"); ok && gsi > 0 {
		gpi, gpiOK = gsi, true
	} else {
		units, unitsOK := resolveField(inputs, defaults, "number_of_units")
		rent, rentOK := resolveField(inputs, defaults, "monthly_rent_per_unit")
		if unitsOK && rentOK {
			gpi, gpiOK = units*rent*12, true
		}
	}
	if gpiOK {
		results.GPI = utils.FormatCurrency(gpi)
	}

	// --- Vacancy & Credit Loss ---
	vacancyRate, ok := resolveField(inputs, defaults, "vacancy_rate")
	if !ok {
		vacancyRate = 0
	}
	var vc float64
	if gpiOK {
		vc = gpi * (vacancyRate / 100)
		results.VC = utils.FormatCurrency(vc)
	}

	// --- Effective Gross Income ---
	var egi float64
	if gpiOK {
		egi = gpi - vc
		results.EGI = utils.FormatCurrency(egi)
	}

	// --- Operating expenses, each zero when absent ---
	expenses := resolveOrZero(inputs, defaults, "property_taxes") +
		resolveOrZero(inputs, defaults, "insurance") +
		resolveOrZero(inputs, defaults, "property_management_fees") +
		resolveOrZero(inputs, defaults, "maintenance_repairs") +
		resolveOrZero(inputs, defaults, "utilities")

	// --- Net Operating Income ---
	var noi float64
	noiOK := gpiOK
	if noiOK {
		noi = egi - expenses
		results.NOI = utils.FormatCurrency(noi)
	}

	// --- Cap Rate ---
	purchasePrice, ppOK := resolveField(inputs, defaults, "purchase_price")
	if !ppOK || purchasePrice <= 0 {
		// A zero or negative price is as unusable as a missing one;
		// give the configured default one more chance.
		purchasePrice, _ = utils.ParseAmount(defaults["purchase_price"])
	}
	if noiOK && purchasePrice > 0 {
		results.CapRate = utils.FormatPercent(noi / purchasePrice * 100)
	} else {
		results.CapRate = naCapRate
	}

	// --- Debt Service (monthly mortgage payment) ---
	downPaymentPct := resolveOrZero(inputs, defaults, "down_payment")
	interestRate := resolveOrZero(inputs, defaults, "interest_rate")
	loanTermYears := int(resolveOrZero(inputs, defaults, "loan_terms_years"))

	var monthlyPayment float64
	paymentOK := false
	if purchasePrice > 0 && loanTermYears > 0 {
		loanAmount := purchasePrice * (1 - downPaymentPct/100)
		if loanAmount <= 0 {
			results.DebtService = naLoanAmount
		} else {
			monthlyPayment = amortizedPayment(loanAmount, interestRate, loanTermYears)
			if math.IsInf(monthlyPayment, 0) || math.IsNaN(monthlyPayment) {
				results.DebtService = naLoanCalc
			} else {
				results.DebtService = utils.FormatCurrency(monthlyPayment)
				paymentOK = true
			}
		}
	} else {
		results.DebtService = naLoanInputs
	}

	// --- Cash Flow Before Taxes ---
	var cfbt float64
	cfbtOK := false
	if noiOK && paymentOK {
		cfbt = noi - monthlyPayment*12
		results.CFBT = utils.FormatCurrency(cfbt)
		cfbtOK = true
	} else {
		results.CFBT = naCFBT
	}

	// --- Cash-on-Cash Return ---
	if cfbtOK && purchasePrice > 0 {
		initialEquity := purchasePrice * (downPaymentPct / 100)
		if initialEquity > 0 {
			results.CoCReturn = utils.FormatPercent(cfbt / initialEquity * 100)
		} else {
			results.CoCReturn = naEquityZero
		}
	} else {
		results.CoCReturn = naEquityInputs
	}

	// --- Gross Rent Multiplier ---
	if purchasePrice > 0 && gpiOK && gpi > 0 {
		results.GRM = utils.FormatRatio(purchasePrice / gpi)
	} else {
		results.GRM = naGRM
	}

	// --- Debt Service Coverage Ratio ---
	if noiOK && paymentOK {
		annualDebtService := monthlyPayment * 12
		if annualDebtService > 0 {
			results.DSCR = utils.FormatRatio(noi / annualDebtService)
		} else {
			results.DSCR = naAnnualDebtZero
		}
	} else {
		results.DSCR = naDSCR
	}

	return results, nil
}

// amortizedPayment returns the monthly payment for a loan of the given
// principal at an annual interest rate (percent) over termYears. A zero
// rate degenerates to straight-line repayment.
func amortizedPayment(principal, annualRatePct float64, termYears int) float64 {
	numPayments := float64(termYears * 12)
	monthlyRate := annualRatePct / 100 / 12
	if monthlyRate == 0 {
		return principal / numPayments
	}
	growth := math.Pow(1+monthlyRate, numPayments)
	return principal * (monthlyRate * growth) / (growth - 1)
}

// resolveField parses the current value for key, falling back to the
// effective default under the same parse rules. Integer-typed fields
// are truncated. The bool is false when both layers are empty or
// unparseable; formulas then treat the field as missing.
func resolveField(inputs, defaults map[string]string, key string) (float64, bool) {
	value, ok := utils.ParseAmount(inputs[key])
	if !ok {
		value, ok = utils.ParseAmount(defaults[key])
	}
	if !ok {
		return 0, false
	}
	if config.IsIntegerField(key) {
		value = float64(int(value))
	}
	return value, true
}

// resolveOrZero is resolveField for fields whose formulas default a
// missing value to zero (expenses and loan terms).
func resolveOrZero(inputs, defaults map[string]string, key string) float64 {
	value, ok := resolveField(inputs, defaults, key)
	if !ok {
		return 0
	}
	return value
}
