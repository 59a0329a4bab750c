package normalize

// usStates lists state, territory and military mail names with their postal
// codes. Order is fixed so score ties resolve the same way every run.
var usStates = []Candidate{
	{Name: "VERMONT", Code: "VT"},
	{Name: "GEORGIA", Code: "GA"},
	{Name: "IOWA", Code: "IA"},
	{Name: "Armed Forces Pacific", Code: "AP"},
	{Name: "GUAM", Code: "GU"},
	{Name: "KANSAS", Code: "KS"},
	{Name: "FLORIDA", Code: "FL"},
	{Name: "AMERICAN SAMOA", Code: "AS"},
	{Name: "NORTH CAROLINA", Code: "NC"},
	{Name: "HAWAII", Code: "HI"},
	{Name: "NEW YORK", Code: "NY"},
	{Name: "CALIFORNIA", Code: "CA"},
	{Name: "ALABAMA", Code: "AL"},
	{Name: "IDAHO", Code: "ID"},
	{Name: "FEDERATED STATES OF MICRONESIA", Code: "FM"},
	{Name: "Armed Forces Americas", Code: "AA"},
	{Name: "DELAWARE", Code: "DE"},
	{Name: "ALASKA", Code: "AK"},
	{Name: "ILLINOIS", Code: "IL"},
	{Name: "Armed Forces Africa", Code: "AE"},
	{Name: "SOUTH DAKOTA", Code: "SD"},
	{Name: "CONNECTICUT", Code: "CT"},
	{Name: "MONTANA", Code: "MT"},
	{Name: "MASSACHUSETTS", Code: "MA"},
	{Name: "PUERTO RICO", Code: "PR"},
	{Name: "Armed Forces Canada", Code: "AE"},
	{Name: "NEW HAMPSHIRE", Code: "NH"},
	{Name: "MARYLAND", Code: "MD"},
	{Name: "NEW MEXICO", Code: "NM"},
	{Name: "MISSISSIPPI", Code: "MS"},
	{Name: "TENNESSEE", Code: "TN"},
	{Name: "PALAU", Code: "PW"},
	{Name: "COLORADO", Code: "CO"},
	{Name: "Armed Forces Middle East", Code: "AE"},
	{Name: "NEW JERSEY", Code: "NJ"},
	{Name: "UTAH", Code: "UT"},
	{Name: "MICHIGAN", Code: "MI"},
	{Name: "WEST VIRGINIA", Code: "WV"},
	{Name: "WASHINGTON", Code: "WA"},
	{Name: "MINNESOTA", Code: "MN"},
	{Name: "OREGON", Code: "OR"},
	{Name: "VIRGINIA", Code: "VA"},
	{Name: "VIRGIN ISLANDS", Code: "VI"},
	{Name: "MARSHALL ISLANDS", Code: "MH"},
	{Name: "WYOMING", Code: "WY"},
	{Name: "OHIO", Code: "OH"},
	{Name: "SOUTH CAROLINA", Code: "SC"},
	{Name: "INDIANA", Code: "IN"},
	{Name: "NEVADA", Code: "NV"},
	{Name: "LOUISIANA", Code: "LA"},
	{Name: "NORTHERN MARIANA ISLANDS", Code: "MP"},
	{Name: "NEBRASKA", Code: "NE"},
	{Name: "ARIZONA", Code: "AZ"},
	{Name: "WISCONSIN", Code: "WI"},
	{Name: "NORTH DAKOTA", Code: "ND"},
	{Name: "Armed Forces Europe", Code: "AE"},
	{Name: "PENNSYLVANIA", Code: "PA"},
	{Name: "OKLAHOMA", Code: "OK"},
	{Name: "KENTUCKY", Code: "KY"},
	{Name: "RHODE ISLAND", Code: "RI"},
	{Name: "DISTRICT OF COLUMBIA", Code: "DC"},
	{Name: "ARKANSAS", Code: "AR"},
	{Name: "MISSOURI", Code: "MO"},
	{Name: "TEXAS", Code: "TX"},
	{Name: "MAINE", Code: "ME"},
}

// USStates returns a copy of the state name to postal code table
func USStates() []Candidate {
	out := make([]Candidate, len(usStates))
	copy(out, usStates)
	return out
}
