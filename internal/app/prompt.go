package app

// responseGuide tells the model which of the four reply shapes to use. The
// block is fixed; the table itself is never included, only the query.
const responseGuide = `Let's decode the way to respond to the queries. The responses depend on the type of information requested in the query.

1. If the query requires a table, format your answer like this:
   {"table": {"columns": ["column1", "column2", ...], "data": [[value1, value2, ...], [value1, value2, ...], ...]}}

2. For a bar chart, respond like this:
   {"bar": {"columns": ["A", "B", "C", ...], "data": [25, 24, 10, ...]}}

3. If a line chart is more appropriate, your reply should look like this:
   {"line": {"columns": ["A", "B", "C", ...], "data": [25, 24, 10, ...]}}

4. For a plain question that doesn't need a chart or table, your response should be:
   {"answer": "Your answer goes here"}

5. If the answer is not known or available, respond with:
   {"answer": "I do not know."}
Example output: {"columns": ["Products", "Orders"], "data": [["51993Masc", 191], ["49631Foun", 152]]}

Here's the query to work on:
`

// promptFor appends the verbatim query to the fixed instruction block. The
// query is passed through unchanged, however long or empty.
func promptFor(query string) string {
	return responseGuide + query
}
