// Package handler implements the HTTP handlers for the landing page and the
// prediction form. Every pipeline failure is rendered back into the form.
package handler
