package holiday

import "strings"

// Country is an entry in the supported-country table.
type Country struct {
	Code string
	Name string
}

// SupportedCountries lists the countries the Nager.Date API provides public
// holidays for, by ISO 3166-1 alpha-2 code.
var SupportedCountries = []Country{
	{"AD", "Andorra"},
	{"AR", "Argentina"},
	{"AU", "Australia"},
	{"AT", "Austria"},
	{"BE", "Belgium"},
	{"BO", "Bolivia"},
	{"BR", "Brazil"},
	{"CA", "Canada"},
	{"CL", "Chile"},
	{"CO", "Colombia"},
	{"CR", "Costa Rica"},
	{"HR", "Croatia"},
	{"CZ", "Czechia"},
	{"DK", "Denmark"},
	{"EC", "Ecuador"},
	{"EE", "Estonia"},
	{"FI", "Finland"},
	{"FR", "France"},
	{"DE", "Germany"},
	{"GR", "Greece"},
	{"GT", "Guatemala"},
	{"HN", "Honduras"},
	{"HU", "Hungary"},
	{"IS", "Iceland"},
	{"IE", "Ireland"},
	{"IT", "Italy"},
	{"LV", "Latvia"},
	{"LI", "Liechtenstein"},
	{"LT", "Lithuania"},
	{"LU", "Luxembourg"},
	{"MT", "Malta"},
	{"MX", "Mexico"},
	{"MC", "Monaco"},
	{"NL", "Netherlands"},
	{"NZ", "New Zealand"},
	{"NI", "Nicaragua"},
	{"NO", "Norway"},
	{"PA", "Panama"},
	{"PY", "Paraguay"},
	{"PE", "Peru"},
	{"PL", "Poland"},
	{"PT", "Portugal"},
	{"RO", "Romania"},
	{"SM", "San Marino"},
	{"SK", "Slovakia"},
	{"SI", "Slovenia"},
	{"ZA", "South Africa"},
	{"ES", "Spain"},
	{"SE", "Sweden"},
	{"CH", "Switzerland"},
	{"UA", "Ukraine"},
	{"GB", "United Kingdom"},
	{"US", "United States"},
	{"UY", "Uruguay"},
	{"VA", "Vatican City"},
	{"VE", "Venezuela"},
}

// IsSupported reports whether the given country code (case-insensitive) has
// holiday data available.
func IsSupported(code string) bool {
	code = strings.ToUpper(code)
	for _, c := range SupportedCountries {
		if c.Code == code {
			return true
		}
	}
	return false
}
