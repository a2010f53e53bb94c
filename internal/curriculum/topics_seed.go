package curriculum

// seedTopics is the GCSE Computer Science topic catalogue the platform
// revises against. Codes follow the specification's dotted numbering.
var seedTopics = []Topic{
	// 3.1 Fundamentals of algorithms
	{
		Code:        "3.1.1",
		Title:       "Representing algorithms",
		Description: "Decomposition, abstraction, pseudo-code and flowcharts; tracing algorithms",
		Keywords:    []string{"decomposition", "abstraction", "pseudo-code", "trace table"},
	},
	{
		Code:        "3.1.2",
		Title:       "Efficiency of algorithms",
		Description: "Comparing algorithm efficiency informally by time taken",
		Keywords:    []string{"efficiency", "comparison"},
	},
	{
		Code:        "3.1.3",
		Title:       "Searching algorithms",
		Description: "Linear search and binary search; preconditions and comparison counts",
		Keywords:    []string{"linear search", "binary search"},
	},
	{
		Code:        "3.1.4",
		Title:       "Sorting algorithms",
		Description: "Bubble sort and merge sort; behaviour pass by pass",
		Keywords:    []string{"bubble sort", "merge sort"},
	},

	// 3.2 Programming
	{
		Code:        "3.2.1",
		Title:       "Data types and variables",
		Description: "Integer, real, boolean, character and string types; declaration and assignment",
		Keywords:    []string{"data type", "variable", "constant", "assignment"},
	},
	{
		Code:        "3.2.2",
		Title:       "Selection and iteration",
		Description: "IF/ELSE, nested selection, definite and indefinite iteration",
		Keywords:    []string{"selection", "iteration", "while", "for"},
	},
	{
		Code:        "3.2.3",
		Title:       "Arrays and strings",
		Description: "One and two dimensional arrays, string handling operations",
		Keywords:    []string{"array", "string handling", "index"},
	},
	{
		Code:        "3.2.4",
		Title:       "Subroutines",
		Description: "Procedures and functions, parameters, return values, local variables",
		Keywords:    []string{"subroutine", "function", "parameter", "scope"},
	},
	{
		Code:        "3.2.5",
		Title:       "Robust and secure programming",
		Description: "Validation, authentication, testing with normal, boundary and erroneous data",
		Keywords:    []string{"validation", "testing", "boundary data"},
	},

	// 3.3 Data representation
	{
		Code:        "3.3.1",
		Title:       "Number bases",
		Description: "Binary, denary and hexadecimal conversion; binary arithmetic and shifts",
		Keywords:    []string{"binary", "hexadecimal", "shift", "overflow"},
	},
	{
		Code:        "3.3.2",
		Title:       "Character encoding",
		Description: "ASCII and Unicode; character sets and code points",
		Keywords:    []string{"ASCII", "Unicode", "character set"},
	},
	{
		Code:        "3.3.3",
		Title:       "Images and sound",
		Description: "Bitmap representation, colour depth, resolution, sampling rate and size calculations",
		Keywords:    []string{"bitmap", "colour depth", "sample rate"},
	},
	{
		Code:        "3.3.4",
		Title:       "Compression",
		Description: "Huffman coding and run length encoding",
		Keywords:    []string{"Huffman", "RLE", "compression"},
	},

	// 3.4 Computer systems
	{
		Code:        "3.4.1",
		Title:       "Boolean logic",
		Description: "AND, OR, NOT, XOR; truth tables and logic circuits",
		Keywords:    []string{"logic gate", "truth table"},
	},
	{
		Code:        "3.4.2",
		Title:       "Software classification",
		Description: "System software, application software, operating system roles",
		Keywords:    []string{"operating system", "utility software"},
	},
	{
		Code:        "3.4.3",
		Title:       "Systems architecture",
		Description: "Von Neumann architecture, fetch-execute cycle, factors affecting CPU performance",
		Keywords:    []string{"CPU", "fetch-execute", "cache", "clock speed"},
	},

	// 3.5 Networks
	{
		Code:        "3.5.1",
		Title:       "Network fundamentals",
		Description: "LAN, WAN, wired and wireless networks, topologies",
		Keywords:    []string{"LAN", "WAN", "topology"},
	},
	{
		Code:        "3.5.2",
		Title:       "Protocols and layers",
		Description: "TCP/IP, HTTP(S), FTP, email protocols and the four layer model",
		Keywords:    []string{"protocol", "TCP/IP", "layer"},
	},

	// 3.6 Cyber security
	{
		Code:        "3.6.1",
		Title:       "Cyber security threats",
		Description: "Social engineering, malware, and methods to detect and prevent threats",
		Keywords:    []string{"phishing", "malware", "penetration testing"},
	},

	// 3.7 Databases and SQL
	{
		Code:        "3.7.1",
		Title:       "Relational databases",
		Description: "Tables, records, fields, primary and foreign keys",
		Keywords:    []string{"table", "primary key", "foreign key"},
	},
	{
		Code:        "3.7.2",
		Title:       "SQL",
		Description: "SELECT, FROM, WHERE, ORDER BY; INSERT, UPDATE and DELETE",
		Keywords:    []string{"SQL", "SELECT", "WHERE"},
	},

	// 3.8 Impacts of technology
	{
		Code:        "3.8.1",
		Title:       "Ethical, legal and environmental impacts",
		Description: "Privacy, legislation and environmental considerations of digital technology",
		Keywords:    []string{"ethics", "legislation", "privacy"},
	},
}
