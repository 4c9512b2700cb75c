// Package render turns information records into Sphinx reStructuredText.
//
// Field lists produced:
//   - :argument name: / :type name: for parameters
//   - :ivar name: or :cvar name: with :vartype name: for class attributes
//   - .. py:data:: and .. py:type:: directives for module attributes
//   - :raises T: for each exception class
//   - :returns: / :rtype: for return values other than None
//
// Annotations are written in one of two styles: Legible pads the contents of
// brackets with spaces (list[ int ]), Pep8 does not (list[int]).
package render
