package fixture

import "github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/domain/sport"

// BackupList returns a static fixture slate for one sport. It stands in for
// the real fixture operation when the device is offline or the model is rate
// limited, so the fixtures view is never empty.
func BackupList(s sport.Sport) []Summary {
	rows, ok := backupFixtures[s]
	if !ok {
		rows = backupFixtures[sport.Soccer]
	}

	out := make([]Summary, len(rows))
	copy(out, rows)
	return out
}

var backupFixtures = map[sport.Sport][]Summary{
	sport.Soccer: {
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", League: "Premier League", Sport: sport.Soccer, Kickoff: "15:00", Status: StatusScheduled},
		{HomeTeam: "Real Madrid", AwayTeam: "Barcelona", League: "La Liga", Sport: sport.Soccer, Kickoff: "21:00", Status: StatusScheduled},
		{HomeTeam: "Bayern Munich", AwayTeam: "Borussia Dortmund", League: "Bundesliga", Sport: sport.Soccer, Kickoff: "18:30", Status: StatusScheduled},
		{HomeTeam: "Inter", AwayTeam: "AC Milan", League: "Serie A", Sport: sport.Soccer, Kickoff: "20:45", Status: StatusScheduled},
		{HomeTeam: "PSG", AwayTeam: "Marseille", League: "Ligue 1", Sport: sport.Soccer, Kickoff: "20:00", Status: StatusScheduled},
	},
	sport.Basketball: {
		{HomeTeam: "Los Angeles Lakers", AwayTeam: "Boston Celtics", League: "NBA", Sport: sport.Basketball, Kickoff: "19:30", Status: StatusScheduled},
		{HomeTeam: "Golden State Warriors", AwayTeam: "Denver Nuggets", League: "NBA", Sport: sport.Basketball, Kickoff: "20:00", Status: StatusScheduled},
		{HomeTeam: "Milwaukee Bucks", AwayTeam: "Miami Heat", League: "NBA", Sport: sport.Basketball, Kickoff: "19:00", Status: StatusScheduled},
	},
	sport.IceHockey: {
		{HomeTeam: "Toronto Maple Leafs", AwayTeam: "Montreal Canadiens", League: "NHL", Sport: sport.IceHockey, Kickoff: "19:00", Status: StatusScheduled},
		{HomeTeam: "Boston Bruins", AwayTeam: "New York Rangers", League: "NHL", Sport: sport.IceHockey, Kickoff: "19:30", Status: StatusScheduled},
		{HomeTeam: "Edmonton Oilers", AwayTeam: "Colorado Avalanche", League: "NHL", Sport: sport.IceHockey, Kickoff: "21:00", Status: StatusScheduled},
	},
	sport.Handball: {
		{HomeTeam: "THW Kiel", AwayTeam: "SG Flensburg-Handewitt", League: "Handball-Bundesliga", Sport: sport.Handball, Kickoff: "19:05", Status: StatusScheduled},
		{HomeTeam: "Barcelona", AwayTeam: "PSG Handball", League: "EHF Champions League", Sport: sport.Handball, Kickoff: "18:45", Status: StatusScheduled},
	},
}
