package location

import "github.com/couchcryptid/crop-advisory-service/internal/domain"

// continents lists places per continent in display order. Nigerian entries use
// "Nigeria - <State>" keys, which callers must pass verbatim.
var continents = []continentTable{
	{
		Name: "North America",
		Places: []entry{
			{"USA", domain.Geo{Lat: 39.8283, Lon: -98.5795}},
		},
	},
	{
		Name: "South America",
		Places: []entry{
			{"Brazil", domain.Geo{Lat: -14.2350, Lon: -51.9253}},
		},
	},
	{
		Name: "Europe",
		Places: []entry{
			{"Germany", domain.Geo{Lat: 51.1657, Lon: 10.4515}},
		},
	},
	{
		Name: "Asia",
		Places: []entry{
			{"India", domain.Geo{Lat: 20.5937, Lon: 78.9629}},
		},
	},
	{
		Name: "Africa",
		Places: []entry{
			{"Nigeria - Abia", domain.Geo{Lat: 5.4527, Lon: 7.5247}},
			{"Nigeria - Adamawa", domain.Geo{Lat: 9.3265, Lon: 12.3984}},
			{"Nigeria - Akwa Ibom", domain.Geo{Lat: 4.9290, Lon: 7.9278}},
			{"Nigeria - Anambra", domain.Geo{Lat: 6.2209, Lon: 7.0684}},
			{"Nigeria - Bauchi", domain.Geo{Lat: 10.7761, Lon: 9.9992}},
			{"Nigeria - Bayelsa", domain.Geo{Lat: 4.7719, Lon: 6.0699}},
			{"Nigeria - Benue", domain.Geo{Lat: 7.3369, Lon: 8.7404}},
			{"Nigeria - Borno", domain.Geo{Lat: 11.5097, Lon: 13.1239}},
			{"Nigeria - Cross River", domain.Geo{Lat: 4.9600, Lon: 8.3300}},
			{"Nigeria - Delta", domain.Geo{Lat: 5.7046, Lon: 5.9350}},
			{"Nigeria - Ebonyi", domain.Geo{Lat: 6.2649, Lon: 8.0137}},
			{"Nigeria - Edo", domain.Geo{Lat: 6.6342, Lon: 5.9304}},
			{"Nigeria - Ekiti", domain.Geo{Lat: 7.7188, Lon: 5.3103}},
			{"Nigeria - Enugu", domain.Geo{Lat: 6.4584, Lon: 7.5464}},
			{"Nigeria - FCT Abuja", domain.Geo{Lat: 9.0765, Lon: 7.3986}},
			{"Nigeria - Gombe", domain.Geo{Lat: 10.2791, Lon: 11.1715}},
			{"Nigeria - Imo", domain.Geo{Lat: 5.5720, Lon: 7.0588}},
			{"Nigeria - Jigawa", domain.Geo{Lat: 12.2280, Lon: 9.5616}},
			{"Nigeria - Kaduna", domain.Geo{Lat: 10.5105, Lon: 7.4165}},
			{"Nigeria - Kano", domain.Geo{Lat: 12.0022, Lon: 8.5920}},
			{"Nigeria - Katsina", domain.Geo{Lat: 12.9194, Lon: 7.6000}},
			{"Nigeria - Kebbi", domain.Geo{Lat: 12.4505, Lon: 4.1996}},
			{"Nigeria - Kogi", domain.Geo{Lat: 7.7337, Lon: 6.6906}},
			{"Nigeria - Kwara", domain.Geo{Lat: 8.9669, Lon: 4.3874}},
			{"Nigeria - Lagos", domain.Geo{Lat: 6.5244, Lon: 3.3792}},
			{"Nigeria - Nasarawa", domain.Geo{Lat: 8.5333, Lon: 7.7000}},
			{"Nigeria - Niger", domain.Geo{Lat: 9.6000, Lon: 6.5500}},
			{"Nigeria - Ogun", domain.Geo{Lat: 7.0000, Lon: 3.5833}},
			{"Nigeria - Ondo", domain.Geo{Lat: 7.1000, Lon: 4.8333}},
			{"Nigeria - Osun", domain.Geo{Lat: 7.5624, Lon: 4.5200}},
			{"Nigeria - Oyo", domain.Geo{Lat: 8.1574, Lon: 3.6147}},
			{"Nigeria - Plateau", domain.Geo{Lat: 9.2182, Lon: 9.5179}},
			{"Nigeria - Rivers", domain.Geo{Lat: 4.8156, Lon: 7.0498}},
			{"Nigeria - Sokoto", domain.Geo{Lat: 13.0667, Lon: 5.2333}},
			{"Nigeria - Taraba", domain.Geo{Lat: 8.0000, Lon: 10.5000}},
			{"Nigeria - Yobe", domain.Geo{Lat: 12.1871, Lon: 11.7068}},
			{"Nigeria - Zamfara", domain.Geo{Lat: 12.1222, Lon: 6.2333}},
		},
	},
	{
		Name: "Oceania",
		Places: []entry{
			{"Australia", domain.Geo{Lat: -25.2744, Lon: 133.7751}},
		},
	},
}

// nigerianStates holds the 36 states and the Federal Capital Territory.
var nigerianStates = []State{
	{Name: "Abia", Capital: "Umuahia", Abbreviation: "AB", Geo: domain.Geo{Lat: 5.5249, Lon: 7.4943}},
	{Name: "Adamawa", Capital: "Yola", Abbreviation: "AD", Geo: domain.Geo{Lat: 9.3233, Lon: 12.4381}},
	{Name: "Akwa Ibom", Capital: "Uyo", Abbreviation: "AK", Geo: domain.Geo{Lat: 4.9757, Lon: 7.9361}},
	{Name: "Anambra", Capital: "Awka", Abbreviation: "AN", Geo: domain.Geo{Lat: 6.2104, Lon: 7.0691}},
	{Name: "Bauchi", Capital: "Bauchi", Abbreviation: "BA", Geo: domain.Geo{Lat: 10.3158, Lon: 9.8442}},
	{Name: "Bayelsa", Capital: "Yenagoa", Abbreviation: "BY", Geo: domain.Geo{Lat: 4.9281, Lon: 6.2676}},
	{Name: "Benue", Capital: "Makurdi", Abbreviation: "BE", Geo: domain.Geo{Lat: 7.7322, Lon: 8.5391}},
	{Name: "Borno", Capital: "Maiduguri", Abbreviation: "BO", Geo: domain.Geo{Lat: 11.8469, Lon: 13.1571}},
	{Name: "Cross River", Capital: "Calabar", Abbreviation: "CR", Geo: domain.Geo{Lat: 4.9602, Lon: 8.3405}},
	{Name: "Delta", Capital: "Asaba", Abbreviation: "DE", Geo: domain.Geo{Lat: 5.4167, Lon: 6.1833}},
	{Name: "Ebonyi", Capital: "Abakaliki", Abbreviation: "EB", Geo: domain.Geo{Lat: 6.3249, Lon: 8.1123}},
	{Name: "Edo", Capital: "Benin City", Abbreviation: "ED", Geo: domain.Geo{Lat: 6.3340, Lon: 5.6037}},
	{Name: "Ekiti", Capital: "Ado-Ekiti", Abbreviation: "EK", Geo: domain.Geo{Lat: 7.6210, Lon: 5.2192}},
	{Name: "Enugu", Capital: "Enugu", Abbreviation: "EN", Geo: domain.Geo{Lat: 6.5244, Lon: 7.4795}},
	{Name: "Gombe", Capital: "Gombe", Abbreviation: "GO", Geo: domain.Geo{Lat: 10.2897, Lon: 11.1673}},
	{Name: "Imo", Capital: "Owerri", Abbreviation: "IM", Geo: domain.Geo{Lat: 5.4920, Lon: 7.0261}},
	{Name: "Jigawa", Capital: "Dutse", Abbreviation: "JI", Geo: domain.Geo{Lat: 11.7992, Lon: 9.3509}},
	{Name: "Kaduna", Capital: "Kaduna", Abbreviation: "KD", Geo: domain.Geo{Lat: 10.5105, Lon: 7.4165}},
	{Name: "Kano", Capital: "Kano", Abbreviation: "KN", Geo: domain.Geo{Lat: 12.0022, Lon: 8.5920}},
	{Name: "Katsina", Capital: "Katsina", Abbreviation: "KT", Geo: domain.Geo{Lat: 12.9815, Lon: 7.6006}},
	{Name: "Kebbi", Capital: "Birnin Kebbi", Abbreviation: "KE", Geo: domain.Geo{Lat: 12.4509, Lon: 4.1999}},
	{Name: "Kogi", Capital: "Lokoja", Abbreviation: "KO", Geo: domain.Geo{Lat: 7.7337, Lon: 6.6907}},
	{Name: "Kwara", Capital: "Ilorin", Abbreviation: "KW", Geo: domain.Geo{Lat: 8.4966, Lon: 4.5421}},
	{Name: "Lagos", Capital: "Ikeja", Abbreviation: "LA", Geo: domain.Geo{Lat: 6.5244, Lon: 3.3792}},
	{Name: "Nasarawa", Capital: "Lafia", Abbreviation: "NA", Geo: domain.Geo{Lat: 8.5060, Lon: 8.5227}},
	{Name: "Niger", Capital: "Minna", Abbreviation: "NI", Geo: domain.Geo{Lat: 9.6119, Lon: 6.5478}},
	{Name: "Ogun", Capital: "Abeokuta", Abbreviation: "OG", Geo: domain.Geo{Lat: 7.1470, Lon: 3.3619}},
	{Name: "Ondo", Capital: "Akure", Abbreviation: "ON", Geo: domain.Geo{Lat: 7.2571, Lon: 5.2058}},
	{Name: "Osun", Capital: "Osogbo", Abbreviation: "OS", Geo: domain.Geo{Lat: 7.7710, Lon: 4.5576}},
	{Name: "Oyo", Capital: "Ibadan", Abbreviation: "OY", Geo: domain.Geo{Lat: 7.3775, Lon: 3.9470}},
	{Name: "Plateau", Capital: "Jos", Abbreviation: "PL", Geo: domain.Geo{Lat: 9.8965, Lon: 8.8583}},
	{Name: "Rivers", Capital: "Port Harcourt", Abbreviation: "RI", Geo: domain.Geo{Lat: 4.8156, Lon: 7.0498}},
	{Name: "Sokoto", Capital: "Sokoto", Abbreviation: "SO", Geo: domain.Geo{Lat: 13.0667, Lon: 5.2333}},
	{Name: "Taraba", Capital: "Jalingo", Abbreviation: "TA", Geo: domain.Geo{Lat: 8.8937, Lon: 11.3596}},
	{Name: "Yobe", Capital: "Damaturu", Abbreviation: "YO", Geo: domain.Geo{Lat: 11.7481, Lon: 11.9669}},
	{Name: "Zamfara", Capital: "Gusau", Abbreviation: "ZA", Geo: domain.Geo{Lat: 12.1704, Lon: 6.6641}},
	{Name: "Federal Capital Territory", Capital: "Abuja", Abbreviation: "FCT", Geo: domain.Geo{Lat: 9.0579, Lon: 7.4951}},
}
