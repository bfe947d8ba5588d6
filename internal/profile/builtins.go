package profile

var builtins = []Profile{
	{
		ID: "snail", Name: "Schnecke", Emoji: "🐌", Difficulty: "Gemütlich",
		Description: "Gemütlich und oft unaufmerksam", Color: "#8B4513",
		Algorithm: MCTS, Iterations: 50, Points: 100,
		WinMessage:  "Oh! Ich hab gewonnen? Wie schön!",
		LoseMessage: "Das war trotzdem gemütlich!",
		DrawMessage: "Unentschieden ist auch nett!",
	},
	{
		ID: "turtle", Name: "Schildkröte", Emoji: "🐢", Difficulty: "Bedächtig",
		Description: "Langsam aber bedacht", Color: "#2E8B57",
		Algorithm: MCTS, Iterations: 100, Points: 200,
		WinMessage:  "Langsam aber sicher zum Sieg!",
		LoseMessage: "Du warst schneller... diesmal!",
		DrawMessage: "Geduld führt zu Ausgeglichenheit!",
	},
	{
		ID: "rabbit", Name: "Hase", Emoji: "🐰", Difficulty: "Voreilig",
		Description: "Schnell aber manchmal voreilig", Color: "#DEB887",
		Algorithm: MCTS, Iterations: 200, Points: 300,
		WinMessage:  "Hoppla! Ich hab gewonnen!",
		LoseMessage: "Nächstes Mal hüpf ich besser!",
		DrawMessage: "Hui, das war knapp!",
	},
	{
		ID: "cat", Name: "Katze", Emoji: "🐱", Difficulty: "Verspielt",
		Description: "Verspielt aber aufmerksam", Color: "#FF8C00",
		Algorithm: MCTS, Iterations: 500, Points: 500,
		WinMessage:  "Schnurr... das war zu einfach!",
		LoseMessage: "Gähn... Du hattest Glück!",
		DrawMessage: "Miau... noch eine Runde?",
	},
	{
		ID: "fox", Name: "Fuchs", Emoji: "🦊", Difficulty: "Schlau",
		Description: "Schlau und berechnet Züge voraus", Color: "#D2691E",
		Algorithm: AlphaBeta, Depth: 4, Points: 800,
		WinMessage:  "Der Klügere gewinnt! 🦊",
		LoseMessage: "Du bist schlauer als du aussiehst!",
		DrawMessage: "Ein würdiges Unentschieden!",
	},
	{
		ID: "wolf", Name: "Wolf", Emoji: "🐺", Difficulty: "Gerissen",
		Description: "Berechnet viele Züge im Voraus", Color: "#4B4B4B",
		Algorithm: AlphaBeta, Depth: 6, Points: 1200,
		WinMessage:  "Das Rudel ist stark! Auuuu!",
		LoseMessage: "Du bist ein würdiger Jäger!",
		DrawMessage: "Wir respektieren uns gegenseitig!",
	},
	{
		ID: "owl", Name: "Eule", Emoji: "🦉", Difficulty: "Weise",
		Description: "Analysiert tief und präzise", Color: "#4A4A4A",
		Algorithm: AlphaBeta, Depth: 8, Points: 1800,
		WinMessage:  "Weisheit siegt! Schuhu!",
		LoseMessage: "Du überraschst mich, Mensch!",
		DrawMessage: "Gleichwertige Gegner!",
	},
	{
		ID: "dragon", Name: "Drache", Emoji: "🐉", Difficulty: "Unbesiegbar",
		Description: "Berechnet bis zum Spielende", Color: "#8B0000",
		Algorithm: AlphaBeta, Depth: 10, Points: 3000,
		WinMessage:  "Niemand besiegt einen Drachen!",
		LoseMessage: "...das war nur Aufwärmen!",
		DrawMessage: "Du bist würdig, Mensch!",
	},
}
