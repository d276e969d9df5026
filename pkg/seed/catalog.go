package seed

// AuthorSeed is one author and the books seeded for them.
type AuthorSeed struct {
	Name        string
	BirthDate   string
	DateOfDeath string
	Books       []BookSeed
}

// BookSeed is a book to seed. Rating is only applied when ratings are
// requested and is zero for unrated books.
type BookSeed struct {
	ISBN            string
	Title           string
	PublicationYear int
	Rating          int
}

// Catalog is the sample library loaded by the seed command.
var Catalog = []AuthorSeed{
	{
		Name:      "J.K. Rowling",
		BirthDate: "1965-07-31",
		Books: []BookSeed{
			{"9780590353427", "Harry Potter and the Sorcerer's Stone", 1997, 9},
			{"9780439064873", "Harry Potter and the Chamber of Secrets", 1998, 9},
			{"9780439136365", "Harry Potter and the Prisoner of Azkaban", 1999, 10},
			{"9780439139595", "Harry Potter and the Goblet of Fire", 2000, 8},
			{"9780439358071", "Harry Potter and the Order of the Phoenix", 2003, 7},
			{"9780439784542", "Harry Potter and the Half-Blood Prince", 2005, 9},
			{"9780545010221", "Harry Potter and the Deathly Hallows", 2007, 10},
		},
	},
	{
		Name:        "George Orwell",
		BirthDate:   "1903-06-25",
		DateOfDeath: "1950-01-21",
		Books: []BookSeed{
			{"9780451524935", "1984", 1949, 10},
			{"9780452284241", "Animal Farm", 1945, 9},
			{"9780156186001", "Homage to Catalonia", 1938, 8},
			{"9780156031585", "Down and Out in Paris and London", 1933, 7},
		},
	},
	{
		Name:        "Jane Austen",
		BirthDate:   "1775-12-16",
		DateOfDeath: "1817-07-18",
		Books: []BookSeed{
			{"9780141439518", "Pride and Prejudice", 1813, 0},
			{"9780141439587", "Sense and Sensibility", 1811, 0},
			{"9780141439778", "Emma", 1815, 0},
			{"9780141439891", "Persuasion", 1817, 0},
			{"9780141439709", "Mansfield Park", 1814, 0},
			{"9780141441146", "Northanger Abbey", 1818, 0},
		},
	},
	{
		Name:        "Ernest Hemingway",
		BirthDate:   "1899-07-21",
		DateOfDeath: "1961-07-02",
		Books: []BookSeed{
			{"9780684801223", "The Old Man and the Sea", 1952, 0},
			{"9780684843131", "A Farewell to Arms", 1929, 0},
			{"9780684824994", "For Whom the Bell Tolls", 1940, 0},
			{"9780684836973", "The Sun Also Rises", 1926, 0},
		},
	},
	{
		Name:        "Agatha Christie",
		BirthDate:   "1890-09-15",
		DateOfDeath: "1976-01-12",
		Books: []BookSeed{
			{"9780062073488", "Murder on the Orient Express", 1934, 0},
			{"9780062073945", "And Then There Were None", 1939, 0},
			{"9780062073556", "Death on the Nile", 1937, 0},
			{"9780062073723", "The Murder of Roger Ackroyd", 1926, 0},
			{"9780062073822", "The ABC Murders", 1936, 0},
		},
	},
	{
		Name:        "Gabriel García Márquez",
		BirthDate:   "1927-03-06",
		DateOfDeath: "2014-04-17",
		Books: []BookSeed{
			{"9780060883287", "One Hundred Years of Solitude", 1967, 0},
			{"9781400034680", "Love in the Time of Cholera", 1985, 0},
			{"9780679755906", "Chronicle of a Death Foretold", 1981, 0},
			{"9781400034925", "The Autumn of the Patriarch", 1975, 0},
		},
	},
	{
		Name:        "Toni Morrison",
		BirthDate:   "1931-02-18",
		DateOfDeath: "2019-08-05",
		Books: []BookSeed{
			{"9781400033416", "Beloved", 1987, 0},
			{"9781400033430", "Song of Solomon", 1977, 0},
			{"9780307388629", "The Bluest Eye", 1970, 0},
			{"9781400076215", "Paradise", 1997, 0},
		},
	},
	{
		Name:      "Haruki Murakami",
		BirthDate: "1949-01-12",
		Books: []BookSeed{
			{"9780307476463", "Norwegian Wood", 1987, 0},
			{"9780679775430", "The Wind-Up Bird Chronicle", 1994, 0},
			{"9780375704024", "Kafka on the Shore", 2002, 0},
			{"9780307593313", "1Q84", 2009, 0},
		},
	},
	{
		Name:        "F. Scott Fitzgerald",
		BirthDate:   "1896-09-24",
		DateOfDeath: "1940-12-21",
		Books: []BookSeed{
			{"9780743273565", "The Great Gatsby", 1925, 0},
			{"9780684830421", "Tender Is the Night", 1934, 0},
			{"9780684843780", "This Side of Paradise", 1920, 0},
			{"9780684824482", "The Beautiful and Damned", 1922, 0},
		},
	},
	{
		Name:        "Virginia Woolf",
		BirthDate:   "1882-01-25",
		DateOfDeath: "1941-03-28",
		Books: []BookSeed{
			{"9780156030359", "Mrs. Dalloway", 1925, 0},
			{"9780156907392", "To the Lighthouse", 1927, 0},
			{"9780156028059", "Orlando", 1928, 0},
			{"9780156949606", "A Room of One's Own", 1929, 0},
		},
	},
	{
		Name:        "Leo Tolstoy",
		BirthDate:   "1828-09-09",
		DateOfDeath: "1910-11-20",
		Books: []BookSeed{
			{"9780143035003", "War and Peace", 1869, 0},
			{"9780143035008", "Anna Karenina", 1877, 0},
			{"9780140449174", "The Death of Ivan Ilyich", 1886, 0},
			{"9780140444414", "Resurrection", 1899, 0},
		},
	},
	{
		Name:      "Margaret Atwood",
		BirthDate: "1939-11-18",
		Books: []BookSeed{
			{"9780385490818", "The Handmaid's Tale", 1985, 0},
			{"9780385721677", "Oryx and Crake", 2003, 0},
			{"9780385720953", "The Blind Assassin", 2000, 0},
			{"9780385528771", "The Testaments", 2019, 0},
		},
	},
	{
		Name:        "James Baldwin",
		BirthDate:   "1924-08-02",
		DateOfDeath: "1987-12-01",
		Books: []BookSeed{
			{"9780345806543", "Go Tell It on the Mountain", 1953, 0},
			{"9780679744719", "Giovanni's Room", 1956, 0},
			{"9780679761785", "Another Country", 1962, 0},
			{"9780679744726", "The Fire Next Time", 1963, 0},
		},
	},
	{
		Name:      "Chimamanda Ngozi Adichie",
		BirthDate: "1977-09-15",
		Books: []BookSeed{
			{"9781400095209", "Half of a Yellow Sun", 2006, 0},
			{"9780307455925", "Americanah", 2013, 0},
			{"9781400076239", "Purple Hibiscus", 2003, 0},
			{"9780307962027", "We Should All Be Feminists", 2014, 0},
		},
	},
	{
		Name:        "J.R.R. Tolkien",
		BirthDate:   "1892-01-03",
		DateOfDeath: "1973-09-02",
		Books: []BookSeed{
			{"9780618640157", "The Hobbit", 1937, 0},
			{"9780618346257", "The Fellowship of the Ring", 1954, 0},
			{"9780618346264", "The Two Towers", 1954, 0},
			{"9780618346271", "The Return of the King", 1955, 0},
			{"9780618391110", "The Silmarillion", 1977, 0},
		},
	},
}
