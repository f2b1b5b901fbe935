package portal

// RootPath is where the client navigates when the session cannot be refreshed
const RootPath = "/"

// Navigator performs the application-level redirect after a failed refresh
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc allows the use of ordinary functions as navigators
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}
