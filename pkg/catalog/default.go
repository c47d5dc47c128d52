package catalog

var defaultCategories = []Category{
	{Name: "Documents", Extensions: []string{".doc", ".docx", ".pdf", ".txt", ".rtf", ".odt"}},
	{Name: "Presentations", Extensions: []string{".ppt", ".pptx", ".odp"}},
	{Name: "Spreadsheets", Extensions: []string{".xls", ".xlsx", ".csv", ".ods"}},
	{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".svg", ".webp"}},
	{Name: "CAD Files", Extensions: []string{".dwg", ".dxf", ".dwf", ".dgn"}},
	{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz"}},
	{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv"}},
	{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg"}},
	{Name: "Code", Extensions: []string{".py", ".js", ".html", ".css", ".cpp", ".java", ".c"}},
}

// Default is the built-in category table.
var Default = MustNew(defaultCategories)
