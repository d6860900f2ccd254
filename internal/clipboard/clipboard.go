package clipboard

// System adapts the package-level clipboard functions to the editor's
// clipboard interface.
type System struct{}

func (System) ReadImage() ([]byte, error) {
	return ReadImage()
}

func (System) WriteImage(data []byte) error {
	return WriteImage(data)
}

func (System) ReadText() (string, error) {
	return ReadText()
}

func (System) WriteText(text string) error {
	return WriteText(text)
}
