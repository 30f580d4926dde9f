// Package share builds social sharing links and opens them in response to
// clicks on elements marked with data-share-target.
//
//	<a href="#" data-share-target="twitter" data-share-description="Read this">Tweet</a>
//
// Every data-share-* attribute of the clicked element becomes a field of
// the shared Data: target, url, title, description and base-url are
// recognized; any other name is passed to the custom generator as a query
// parameter.
package share
