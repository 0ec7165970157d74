package countries

// table is ordered by common English name.
var table = []Country{
	{Code: "AF", Name: "Afghanistan", DialCode: "+93", Currency: "AFN"},
	{Code: "AL", Name: "Albania", DialCode: "+355", Currency: "ALL"},
	{Code: "DZ", Name: "Algeria", DialCode: "+213", Currency: "DZD"},
	{Code: "AD", Name: "Andorra", DialCode: "+376", Currency: "EUR"},
	{Code: "AO", Name: "Angola", DialCode: "+244", Currency: "AOA"},
	{Code: "AR", Name: "Argentina", DialCode: "+54", Currency: "ARS"},
	{Code: "AM", Name: "Armenia", DialCode: "+374", Currency: "AMD"},
	{Code: "AU", Name: "Australia", DialCode: "+61", Currency: "AUD"},
	{Code: "AT", Name: "Austria", DialCode: "+43", Currency: "EUR"},
	{Code: "AZ", Name: "Azerbaijan", DialCode: "+994", Currency: "AZN"},
	{Code: "BS", Name: "Bahamas", DialCode: "+1242", Currency: "BSD"},
	{Code: "BH", Name: "Bahrain", DialCode: "+973", Currency: "BHD"},
	{Code: "BD", Name: "Bangladesh", DialCode: "+880", Currency: "BDT"},
	{Code: "BB", Name: "Barbados", DialCode: "+1246", Currency: "BBD"},
	{Code: "BY", Name: "Belarus", DialCode: "+375", Currency: "BYN"},
	{Code: "BE", Name: "Belgium", DialCode: "+32", Currency: "EUR"},
	{Code: "BZ", Name: "Belize", DialCode: "+501", Currency: "BZD"},
	{Code: "BJ", Name: "Benin", DialCode: "+229", Currency: "XOF"},
	{Code: "BT", Name: "Bhutan", DialCode: "+975", Currency: "BTN"},
	{Code: "BO", Name: "Bolivia", DialCode: "+591", Currency: "BOB"},
	{Code: "BA", Name: "Bosnia and Herzegovina", DialCode: "+387", Currency: "BAM"},
	{Code: "BW", Name: "Botswana", DialCode: "+267", Currency: "BWP"},
	{Code: "BR", Name: "Brazil", DialCode: "+55", Currency: "BRL"},
	{Code: "BN", Name: "Brunei", DialCode: "+673", Currency: "BND"},
	{Code: "BG", Name: "Bulgaria", DialCode: "+359", Currency: "BGN"},
	{Code: "BF", Name: "Burkina Faso", DialCode: "+226", Currency: "XOF"},
	{Code: "BI", Name: "Burundi", DialCode: "+257", Currency: "BIF"},
	{Code: "KH", Name: "Cambodia", DialCode: "+855", Currency: "KHR"},
	{Code: "CM", Name: "Cameroon", DialCode: "+237", Currency: "XAF"},
	{Code: "CA", Name: "Canada", DialCode: "+1", Currency: "CAD"},
	{Code: "CV", Name: "Cape Verde", DialCode: "+238", Currency: "CVE"},
	{Code: "CF", Name: "Central African Republic", DialCode: "+236", Currency: "XAF"},
	{Code: "TD", Name: "Chad", DialCode: "+235", Currency: "XAF"},
	{Code: "CL", Name: "Chile", DialCode: "+56", Currency: "CLP"},
	{Code: "CN", Name: "China", DialCode: "+86", Currency: "CNY"},
	{Code: "CO", Name: "Colombia", DialCode: "+57", Currency: "COP"},
	{Code: "KM", Name: "Comoros", DialCode: "+269", Currency: "KMF"},
	{Code: "CG", Name: "Congo", DialCode: "+242", Currency: "XAF"},
	{Code: "CD", Name: "Congo (DRC)", DialCode: "+243", Currency: "CDF"},
	{Code: "CR", Name: "Costa Rica", DialCode: "+506", Currency: "CRC"},
	{Code: "CI", Name: "Côte d'Ivoire", DialCode: "+225", Currency: "XOF"},
	{Code: "HR", Name: "Croatia", DialCode: "+385", Currency: "EUR"},
	{Code: "CU", Name: "Cuba", DialCode: "+53", Currency: "CUP"},
	{Code: "CY", Name: "Cyprus", DialCode: "+357", Currency: "EUR"},
	{Code: "CZ", Name: "Czechia", DialCode: "+420", Currency: "CZK"},
	{Code: "DK", Name: "Denmark", DialCode: "+45", Currency: "DKK"},
	{Code: "DJ", Name: "Djibouti", DialCode: "+253", Currency: "DJF"},
	{Code: "DM", Name: "Dominica", DialCode: "+1767", Currency: "XCD"},
	{Code: "DO", Name: "Dominican Republic", DialCode: "+1809", Currency: "DOP"},
	{Code: "EC", Name: "Ecuador", DialCode: "+593", Currency: "USD"},
	{Code: "EG", Name: "Egypt", DialCode: "+20", Currency: "EGP"},
	{Code: "SV", Name: "El Salvador", DialCode: "+503", Currency: "USD"},
	{Code: "GQ", Name: "Equatorial Guinea", DialCode: "+240", Currency: "XAF"},
	{Code: "ER", Name: "Eritrea", DialCode: "+291", Currency: "ERN"},
	{Code: "EE", Name: "Estonia", DialCode: "+372", Currency: "EUR"},
	{Code: "SZ", Name: "Eswatini", DialCode: "+268", Currency: "SZL"},
	{Code: "ET", Name: "Ethiopia", DialCode: "+251", Currency: "ETB"},
	{Code: "FJ", Name: "Fiji", DialCode: "+679", Currency: "FJD"},
	{Code: "FI", Name: "Finland", DialCode: "+358", Currency: "EUR"},
	{Code: "FR", Name: "France", DialCode: "+33", Currency: "EUR"},
	{Code: "GA", Name: "Gabon", DialCode: "+241", Currency: "XAF"},
	{Code: "GM", Name: "Gambia", DialCode: "+220", Currency: "GMD"},
	{Code: "GE", Name: "Georgia", DialCode: "+995", Currency: "GEL"},
	{Code: "DE", Name: "Germany", DialCode: "+49", Currency: "EUR"},
	{Code: "GH", Name: "Ghana", DialCode: "+233", Currency: "GHS"},
	{Code: "GR", Name: "Greece", DialCode: "+30", Currency: "EUR"},
	{Code: "GD", Name: "Grenada", DialCode: "+1473", Currency: "XCD"},
	{Code: "GT", Name: "Guatemala", DialCode: "+502", Currency: "GTQ"},
	{Code: "GN", Name: "Guinea", DialCode: "+224", Currency: "GNF"},
	{Code: "GW", Name: "Guinea-Bissau", DialCode: "+245", Currency: "XOF"},
	{Code: "GY", Name: "Guyana", DialCode: "+592", Currency: "GYD"},
	{Code: "HT", Name: "Haiti", DialCode: "+509", Currency: "HTG"},
	{Code: "HN", Name: "Honduras", DialCode: "+504", Currency: "HNL"},
	{Code: "HU", Name: "Hungary", DialCode: "+36", Currency: "HUF"},
	{Code: "IS", Name: "Iceland", DialCode: "+354", Currency: "ISK"},
	{Code: "IN", Name: "India", DialCode: "+91", Currency: "INR"},
	{Code: "ID", Name: "Indonesia", DialCode: "+62", Currency: "IDR"},
	{Code: "IR", Name: "Iran", DialCode: "+98", Currency: "IRR"},
	{Code: "IQ", Name: "Iraq", DialCode: "+964", Currency: "IQD"},
	{Code: "IE", Name: "Ireland", DialCode: "+353", Currency: "EUR"},
	{Code: "IL", Name: "Israel", DialCode: "+972", Currency: "ILS"},
	{Code: "IT", Name: "Italy", DialCode: "+39", Currency: "EUR"},
	{Code: "JM", Name: "Jamaica", DialCode: "+1876", Currency: "JMD"},
	{Code: "JP", Name: "Japan", DialCode: "+81", Currency: "JPY"},
	{Code: "JO", Name: "Jordan", DialCode: "+962", Currency: "JOD"},
	{Code: "KZ", Name: "Kazakhstan", DialCode: "+7", Currency: "KZT"},
	{Code: "KE", Name: "Kenya", DialCode: "+254", Currency: "KES"},
	{Code: "KI", Name: "Kiribati", DialCode: "+686", Currency: "AUD"},
	{Code: "KW", Name: "Kuwait", DialCode: "+965", Currency: "KWD"},
	{Code: "KG", Name: "Kyrgyzstan", DialCode: "+996", Currency: "KGS"},
	{Code: "LA", Name: "Laos", DialCode: "+856", Currency: "LAK"},
	{Code: "LV", Name: "Latvia", DialCode: "+371", Currency: "EUR"},
	{Code: "LB", Name: "Lebanon", DialCode: "+961", Currency: "LBP"},
	{Code: "LS", Name: "Lesotho", DialCode: "+266", Currency: "LSL"},
	{Code: "LR", Name: "Liberia", DialCode: "+231", Currency: "LRD"},
	{Code: "LY", Name: "Libya", DialCode: "+218", Currency: "LYD"},
	{Code: "LI", Name: "Liechtenstein", DialCode: "+423", Currency: "CHF"},
	{Code: "LT", Name: "Lithuania", DialCode: "+370", Currency: "EUR"},
	{Code: "LU", Name: "Luxembourg", DialCode: "+352", Currency: "EUR"},
	{Code: "MG", Name: "Madagascar", DialCode: "+261", Currency: "MGA"},
	{Code: "MW", Name: "Malawi", DialCode: "+265", Currency: "MWK"},
	{Code: "MY", Name: "Malaysia", DialCode: "+60", Currency: "MYR"},
	{Code: "MV", Name: "Maldives", DialCode: "+960", Currency: "MVR"},
	{Code: "ML", Name: "Mali", DialCode: "+223", Currency: "XOF"},
	{Code: "MT", Name: "Malta", DialCode: "+356", Currency: "EUR"},
	{Code: "MH", Name: "Marshall Islands", DialCode: "+692", Currency: "USD"},
	{Code: "MR", Name: "Mauritania", DialCode: "+222", Currency: "MRU"},
	{Code: "MU", Name: "Mauritius", DialCode: "+230", Currency: "MUR"},
	{Code: "MX", Name: "Mexico", DialCode: "+52", Currency: "MXN"},
	{Code: "FM", Name: "Micronesia", DialCode: "+691", Currency: "USD"},
	{Code: "MD", Name: "Moldova", DialCode: "+373", Currency: "MDL"},
	{Code: "MC", Name: "Monaco", DialCode: "+377", Currency: "EUR"},
	{Code: "MN", Name: "Mongolia", DialCode: "+976", Currency: "MNT"},
	{Code: "ME", Name: "Montenegro", DialCode: "+382", Currency: "EUR"},
	{Code: "MA", Name: "Morocco", DialCode: "+212", Currency: "MAD"},
	{Code: "MZ", Name: "Mozambique", DialCode: "+258", Currency: "MZN"},
	{Code: "MM", Name: "Myanmar", DialCode: "+95", Currency: "MMK"},
	{Code: "NA", Name: "Namibia", DialCode: "+264", Currency: "NAD"},
	{Code: "NR", Name: "Nauru", DialCode: "+674", Currency: "AUD"},
	{Code: "NP", Name: "Nepal", DialCode: "+977", Currency: "NPR"},
	{Code: "NL", Name: "Netherlands", DialCode: "+31", Currency: "EUR"},
	{Code: "NZ", Name: "New Zealand", DialCode: "+64", Currency: "NZD"},
	{Code: "NI", Name: "Nicaragua", DialCode: "+505", Currency: "NIO"},
	{Code: "NE", Name: "Niger", DialCode: "+227", Currency: "XOF"},
	{Code: "NG", Name: "Nigeria", DialCode: "+234", Currency: "NGN"},
	{Code: "KP", Name: "North Korea", DialCode: "+850", Currency: "KPW"},
	{Code: "MK", Name: "North Macedonia", DialCode: "+389", Currency: "MKD"},
	{Code: "NO", Name: "Norway", DialCode: "+47", Currency: "NOK"},
	{Code: "OM", Name: "Oman", DialCode: "+968", Currency: "OMR"},
	{Code: "PK", Name: "Pakistan", DialCode: "+92", Currency: "PKR"},
	{Code: "PW", Name: "Palau", DialCode: "+680", Currency: "USD"},
	{Code: "PA", Name: "Panama", DialCode: "+507", Currency: "PAB"},
	{Code: "PG", Name: "Papua New Guinea", DialCode: "+675", Currency: "PGK"},
	{Code: "PY", Name: "Paraguay", DialCode: "+595", Currency: "PYG"},
	{Code: "PE", Name: "Peru", DialCode: "+51", Currency: "PEN"},
	{Code: "PH", Name: "Philippines", DialCode: "+63", Currency: "PHP"},
	{Code: "PL", Name: "Poland", DialCode: "+48", Currency: "PLN"},
	{Code: "PT", Name: "Portugal", DialCode: "+351", Currency: "EUR"},
	{Code: "QA", Name: "Qatar", DialCode: "+974", Currency: "QAR"},
	{Code: "RO", Name: "Romania", DialCode: "+40", Currency: "RON"},
	{Code: "RU", Name: "Russia", DialCode: "+7", Currency: "RUB"},
	{Code: "RW", Name: "Rwanda", DialCode: "+250", Currency: "RWF"},
	{Code: "WS", Name: "Samoa", DialCode: "+685", Currency: "WST"},
	{Code: "SM", Name: "San Marino", DialCode: "+378", Currency: "EUR"},
	{Code: "ST", Name: "São Tomé and Príncipe", DialCode: "+239", Currency: "STN"},
	{Code: "SA", Name: "Saudi Arabia", DialCode: "+966", Currency: "SAR"},
	{Code: "SN", Name: "Senegal", DialCode: "+221", Currency: "XOF"},
	{Code: "RS", Name: "Serbia", DialCode: "+381", Currency: "RSD"},
	{Code: "SC", Name: "Seychelles", DialCode: "+248", Currency: "SCR"},
	{Code: "SL", Name: "Sierra Leone", DialCode: "+232", Currency: "SLE"},
	{Code: "SG", Name: "Singapore", DialCode: "+65", Currency: "SGD"},
	{Code: "SK", Name: "Slovakia", DialCode: "+421", Currency: "EUR"},
	{Code: "SI", Name: "Slovenia", DialCode: "+386", Currency: "EUR"},
	{Code: "SB", Name: "Solomon Islands", DialCode: "+677", Currency: "SBD"},
	{Code: "SO", Name: "Somalia", DialCode: "+252", Currency: "SOS"},
	{Code: "ZA", Name: "South Africa", DialCode: "+27", Currency: "ZAR"},
	{Code: "KR", Name: "South Korea", DialCode: "+82", Currency: "KRW"},
	{Code: "SS", Name: "South Sudan", DialCode: "+211", Currency: "SSP"},
	{Code: "ES", Name: "Spain", DialCode: "+34", Currency: "EUR"},
	{Code: "LK", Name: "Sri Lanka", DialCode: "+94", Currency: "LKR"},
	{Code: "SD", Name: "Sudan", DialCode: "+249", Currency: "SDG"},
	{Code: "SR", Name: "Suriname", DialCode: "+597", Currency: "SRD"},
	{Code: "SE", Name: "Sweden", DialCode: "+46", Currency: "SEK"},
	{Code: "CH", Name: "Switzerland", DialCode: "+41", Currency: "CHF"},
	{Code: "SY", Name: "Syria", DialCode: "+963", Currency: "SYP"},
	{Code: "TW", Name: "Taiwan", DialCode: "+886", Currency: "TWD"},
	{Code: "TJ", Name: "Tajikistan", DialCode: "+992", Currency: "TJS"},
	{Code: "TZ", Name: "Tanzania", DialCode: "+255", Currency: "TZS"},
	{Code: "TH", Name: "Thailand", DialCode: "+66", Currency: "THB"},
	{Code: "TL", Name: "Timor-Leste", DialCode: "+670", Currency: "USD"},
	{Code: "TG", Name: "Togo", DialCode: "+228", Currency: "XOF"},
	{Code: "TO", Name: "Tonga", DialCode: "+676", Currency: "TOP"},
	{Code: "TT", Name: "Trinidad and Tobago", DialCode: "+1868", Currency: "TTD"},
	{Code: "TN", Name: "Tunisia", DialCode: "+216", Currency: "TND"},
	{Code: "TR", Name: "Türkiye", DialCode: "+90", Currency: "TRY"},
	{Code: "TM", Name: "Turkmenistan", DialCode: "+993", Currency: "TMT"},
	{Code: "TV", Name: "Tuvalu", DialCode: "+688", Currency: "AUD"},
	{Code: "UG", Name: "Uganda", DialCode: "+256", Currency: "UGX"},
	{Code: "UA", Name: "Ukraine", DialCode: "+380", Currency: "UAH"},
	{Code: "AE", Name: "United Arab Emirates", DialCode: "+971", Currency: "AED"},
	{Code: "GB", Name: "United Kingdom", DialCode: "+44", Currency: "GBP"},
	{Code: "US", Name: "United States", DialCode: "+1", Currency: "USD"},
	{Code: "UY", Name: "Uruguay", DialCode: "+598", Currency: "UYU"},
	{Code: "UZ", Name: "Uzbekistan", DialCode: "+998", Currency: "UZS"},
	{Code: "VU", Name: "Vanuatu", DialCode: "+678", Currency: "VUV"},
	{Code: "VE", Name: "Venezuela", DialCode: "+58", Currency: "VES"},
	{Code: "VN", Name: "Vietnam", DialCode: "+84", Currency: "VND"},
	{Code: "YE", Name: "Yemen", DialCode: "+967", Currency: "YER"},
	{Code: "ZM", Name: "Zambia", DialCode: "+260", Currency: "ZMW"},
	{Code: "ZW", Name: "Zimbabwe", DialCode: "+263", Currency: "ZWL"},
}
