package dataset

// License is printed every time a dataset name is accepted.
const License = `
This package provides only easy-download and easy-load token-level wikitext dataset.
Please visit https://www.salesforce.com/products/einstein/ai-research/the-wikitext-dependency-language-modeling-dataset first.

The ` + "`wikitext`" + ` dataset follows ` + "`Creative_Commons_Attribution-ShareAlike_3.0_Unported_License`" + `.
If you wonder what is the LICENSE, please visit https://en.wikipedia.org/wiki/Wikipedia:Text_of_Creative_Commons_Attribution-ShareAlike_3.0_Unported_License first.

The site paperswithcode.com lists which papers use the dataset and their perplexity results.
- https://paperswithcode.com/sota/language-modelling-on-wikitext-2
- https://paperswithcode.com/sota/language-modelling-on-wikitext-103
`
